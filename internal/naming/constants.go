package naming

// SchemaNamePools is the schema identifier expected in a name pool config
const SchemaNamePools = "name-pools"

// FullNameTemplate joins a first and last name
const FullNameTemplate = "%s %s"

// Error context messages for wrapped errors during configuration loading
const (
	ErrContextFailedToLoadNames   = "failed to load name pools: %w"
	ErrContextFailedToParseConfig = "failed to parse config %s: %w"
)

// Configuration validation error messages
const (
	ErrMsgInvalidSchema = "invalid schema in %s: expected '%s', got '%s'"
	ErrMsgEmptyPool     = "%s has an empty name pool"
)

// Built-in fallback pools
var defaultFirstNames = []string{
	"Ava", "Ben", "Carla", "Dana", "Eli", "Fiona", "Gus", "Hana",
	"Ivan", "Jade", "Kofi", "Lena", "Marco", "Nia", "Omar", "Priya",
	"Quinn", "Rosa", "Sam", "Tara", "Uma", "Victor", "Wren", "Yusuf", "Zoe",
}

var defaultLastNames = []string{
	"Alvarez", "Brooks", "Chen", "Diallo", "Engel", "Fischer", "Garcia",
	"Haddad", "Ito", "Jensen", "Kim", "Lopez", "Mensah", "Novak", "Okafor",
	"Patel", "Quist", "Rossi", "Santos", "Tanaka", "Ueda", "Vargas",
	"Weber", "Yang", "Zamora",
}
