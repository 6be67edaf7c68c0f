package narrator

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hustlehq/tycoonsim/internal/catalog"
	"github.com/hustlehq/tycoonsim/internal/domain"
	"github.com/hustlehq/tycoonsim/internal/event"
	"github.com/hustlehq/tycoonsim/internal/repository"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// Subscriber bridges simulation events to narration lines on the overlay.
// Each business type carries a guide character; lines are rendered in that
// guide's voice.
type Subscriber struct {
	client     *Client
	bus        event.Bus
	businesses repository.Business
	catalog    catalog.Service
}

// NewSubscriber creates a new narration event subscriber
func NewSubscriber(client *Client, bus event.Bus, businesses repository.Business, catalogSvc catalog.Service) *Subscriber {
	return &Subscriber{
		client:     client,
		bus:        bus,
		businesses: businesses,
		catalog:    catalogSvc,
	}
}

// Subscribe registers handlers for narration-worthy event types
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.OrderCompleted, s.handleOrderCompleted)
	s.bus.Subscribe(event.OrderFailed, s.handleOrderFailed)
	s.bus.Subscribe(event.OrderRejected, s.handleOrderRejected)
	s.bus.Subscribe(event.RecruitsArrived, s.handleRecruitsArrived)
	s.bus.Subscribe(event.PayrollProcessed, s.handlePayroll)
	s.bus.Subscribe(event.OverdraftWarning, s.handleOverdraft)
	s.bus.Subscribe(event.StockoutWarning, s.handleStockout)

	slog.Info(LogMsgSubscribed,
		"types", []string{
			string(event.OrderCompleted),
			string(event.OrderFailed),
			string(event.OrderRejected),
			string(event.RecruitsArrived),
			string(event.PayrollProcessed),
			string(event.OverdraftWarning),
			string(event.StockoutWarning),
		})
}

func (s *Subscriber) handleOrderCompleted(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.OrderPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := RenderOrderCompleted(guide, payload)
	s.push(payload.BusinessID, guide, line)
	return nil
}

func (s *Subscriber) handleOrderFailed(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.OrderPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := fmt.Sprintf("%s: We couldn't finish %s's order. %s.",
		guide.Name, payload.CustomerName, titleCaser.String(payload.FailReason))
	s.push(payload.BusinessID, domain.Guide{Name: guide.Name, Tone: ToneWarning}, line)
	return nil
}

func (s *Subscriber) handleOrderRejected(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.OrderPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := fmt.Sprintf("%s: We turned %s away. Word of that gets around.",
		guide.Name, payload.CustomerName)
	s.push(payload.BusinessID, guide, line)
	return nil
}

func (s *Subscriber) handleRecruitsArrived(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.RecruitsArrivedPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := fmt.Sprintf("%s: %d new candidates dropped off resumes. %d waiting in the pool.",
		guide.Name, payload.Count, payload.PoolSize)
	s.push(payload.BusinessID, guide, line)
	return nil
}

func (s *Subscriber) handlePayroll(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.PayrollPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := fmt.Sprintf("%s: Payday. %s paid out to %d staff.",
		guide.Name, FormatMoney(payload.AmountCents), payload.EmployeeCount)
	if payload.Overdrawn {
		line += " The account went negative covering it."
		guide.Tone = ToneWarning
	}
	s.push(payload.BusinessID, guide, line)
	return nil
}

func (s *Subscriber) handleOverdraft(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.OverdraftPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := fmt.Sprintf("%s: The till is at %s. We're operating on fumes.",
		guide.Name, FormatMoney(payload.CashCents))
	s.push(payload.BusinessID, domain.Guide{Name: guide.Name, Tone: ToneWarning}, line)
	return nil
}

func (s *Subscriber) handleStockout(ctx context.Context, evt event.Event) error {
	payload, ok := evt.Payload.(event.StockoutPayloadV1)
	if !ok {
		slog.Warn(LogMsgBadPayloadType, "event_type", evt.Type)
		return nil
	}

	guide := s.guideFor(ctx, payload.BusinessID)
	line := fmt.Sprintf("%s: We're out of %s. Needed %d, had %d.",
		guide.Name, payload.Item, payload.Required, payload.Available)
	s.push(payload.BusinessID, domain.Guide{Name: guide.Name, Tone: ToneWarning}, line)
	return nil
}

// guideFor resolves the guide character for a business, falling back to a
// neutral narrator when the business or its type can't be resolved
func (s *Subscriber) guideFor(ctx context.Context, businessID string) domain.Guide {
	neutral := domain.Guide{Name: "The Narrator", Tone: ToneNeutral}

	state, err := s.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		slog.Debug(LogMsgGuideUnknown, "business_id", businessID, "error", err)
		return neutral
	}

	bt, ok := s.catalog.GetBusinessType(state.TypeID)
	if !ok || bt.Guide.Name == "" {
		slog.Debug(LogMsgGuideUnknown, "business_id", businessID, "type_id", state.TypeID)
		return neutral
	}

	guide := bt.Guide
	if guide.Tone == "" {
		guide.Tone = ToneNeutral
	}
	return guide
}

func (s *Subscriber) push(businessID string, guide domain.Guide, line string) {
	err := s.client.Push(Narration{
		BusinessID: businessID,
		Guide:      guide.Name,
		Tone:       guide.Tone,
		Line:       line,
	})
	if err != nil {
		// The overlay being unavailable is expected; the line is cosmetic.
		slog.Debug(LogMsgNarrateFailed, "business_id", businessID, "error", err)
	}
}

// RenderOrderCompleted renders a completion line in the guide's voice. A tip
// or a five-star rating changes the flavor.
func RenderOrderCompleted(guide domain.Guide, p event.OrderPayloadV1) string {
	total := FormatMoney(p.TotalCents)

	switch guide.Tone {
	case ToneWarm:
		if p.TipCents > 0 {
			return fmt.Sprintf("%s: %s loved it and left %s on top of %s. That's how you build regulars.",
				guide.Name, p.CustomerName, FormatMoney(p.TipCents), total)
		}
		return fmt.Sprintf("%s: %s's order went out just right. %s in the till.",
			guide.Name, p.CustomerName, total)
	case ToneUpbeat:
		if p.Rating >= 5 {
			return fmt.Sprintf("%s: Five stars from %s!! %s earned and a fan for life!",
				guide.Name, p.CustomerName, total)
		}
		return fmt.Sprintf("%s: Another one done! %s paid %s!",
			guide.Name, p.CustomerName, total)
	case ToneDry:
		if p.TipCents > 0 {
			return fmt.Sprintf("%s: %s tipped %s. Must've been a good day for somebody.",
				guide.Name, p.CustomerName, FormatMoney(p.TipCents))
		}
		return fmt.Sprintf("%s: %s paid. %s. It works when you fix it right.",
			guide.Name, p.CustomerName, total)
	default:
		return fmt.Sprintf("%s: Order for %s completed. %s collected, rated %d stars.",
			guide.Name, p.CustomerName, total, p.Rating)
	}
}

// FormatMoney renders cents as a dollar string, e.g. 1325 -> "$13.25",
// -500 -> "-$5.00"
func FormatMoney(cents domain.Money) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
