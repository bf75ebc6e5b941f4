package engine

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/vatastudio/concierge/internal/catalog"
	"github.com/vatastudio/concierge/internal/escalate"
	"github.com/vatastudio/concierge/internal/history"
	"github.com/vatastudio/concierge/internal/intent"
	"github.com/vatastudio/concierge/internal/match"
	"github.com/vatastudio/concierge/internal/session"
	"github.com/vatastudio/concierge/internal/textutil"
)

// historyContextLimit is how many log entries feed the manager page and
// the unknown-intent hinting.
const historyContextLimit = 3

// Resolver owns one end-to-end resolution pipeline. All collaborators
// are injected; History and Notifier may be nil (history-less and
// page-less operation degrade gracefully).
type Resolver struct {
	Catalog  *catalog.Cache
	Sessions *session.Controller
	History  *history.Store
	Notifier *escalate.Notifier

	classifier *intent.Classifier
	rng        *rand.Rand
}

// NewResolver wires the pipeline. The classifier rule set is embedded;
// an error here means the build itself is broken.
func NewResolver(cache *catalog.Cache, sessions *session.Controller, hist *history.Store, notifier *escalate.Notifier) (*Resolver, error) {
	classifier, err := intent.NewClassifier()
	if err != nil {
		return nil, err
	}
	return &Resolver{
		Catalog:    cache,
		Sessions:   sessions,
		History:    hist,
		Notifier:   notifier,
		classifier: classifier,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Resolve runs the full pipeline for one inbound message and returns the
// decision. Never returns an error: every stage has a defined fallback.
func (r *Resolver) Resolve(ctx context.Context, user escalate.UserInfo, rawText string) Decision {
	if !r.Sessions.IsEnabled(user.ID) {
		return Decision{Kind: DecisionBlocked, Reason: "bot disabled for user", Reply: replyBlocked}
	}
	if !r.Sessions.CheckRateLimit(user.ID) {
		return Decision{Kind: DecisionBlocked, Reason: "rate limited", Reply: replyBlocked}
	}

	r.Sessions.RecordMessage(user.ID)
	r.append(user, rawText, false)

	text := textutil.Clean(rawText)
	kind := r.classifier.Classify(text)
	entities := intent.Extract(text)
	log.Printf("🎯 user %d intent=%s entities=%+v", user.ID, kind, entities)

	if !r.Catalog.Loaded(catalog.Tariffs) {
		return r.finish(user, Decision{
			Kind:     DecisionDataUnavailable,
			Intent:   kind,
			Entities: entities,
			Reply:    replyDataUnavailable,
		})
	}

	if escalate.ShouldEscalate(text, kind) {
		return r.finish(user, r.escalateDecision(ctx, user, text, kind, entities))
	}

	switch kind {
	case intent.Command:
		return r.finish(user, Decision{Kind: DecisionTemplate, Intent: kind, Entities: entities, Reply: replyCommand})

	case intent.TariffInfo:
		return r.finish(user, r.tariffDecision(text, entities))

	case intent.ModelInfo:
		return r.finish(user, r.modelDecision(text, entities))

	case intent.Greeting, intent.Farewell, intent.Portfolio, intent.Schedule, intent.Thanks:
		return r.finish(user, Decision{
			Kind:     DecisionTemplate,
			Intent:   kind,
			Entities: entities,
			Reply:    pickTemplate(r.rng, kind),
		})

	default:
		return r.finish(user, r.unknownDecision(user, kind, entities))
	}
}

func (r *Resolver) tariffDecision(text string, entities intent.Entities) Decision {
	records := r.Catalog.Records(catalog.Tariffs)
	found := match.Tariff(text, records, r.Catalog.Synonyms())
	if found == nil {
		return Decision{Kind: DecisionTemplate, Intent: intent.TariffInfo, Entities: entities, Reply: replyTariffNoMatch}
	}
	return Decision{
		Kind:     DecisionRecord,
		Intent:   intent.TariffInfo,
		Entities: entities,
		Category: catalog.Tariffs,
		Record:   found,
		Reply:    FormatTariff(found.Tariff()),
	}
}

func (r *Resolver) modelDecision(text string, entities intent.Entities) Decision {
	records := r.Catalog.Records(catalog.Models)
	found := match.Model(text, records, r.Catalog.Synonyms())
	if found == nil {
		return Decision{Kind: DecisionTemplate, Intent: intent.ModelInfo, Entities: entities, Reply: replyModelNoMatch}
	}
	return Decision{
		Kind:     DecisionRecord,
		Intent:   intent.ModelInfo,
		Entities: entities,
		Category: catalog.Models,
		Record:   found,
		Reply:    FormatModel(found.Model()),
	}
}

func (r *Resolver) escalateDecision(ctx context.Context, user escalate.UserInfo, text string, kind intent.Kind, entities intent.Entities) Decision {
	d := Decision{Kind: DecisionEscalate, Intent: kind, Entities: entities, Reason: text}

	if r.Notifier == nil {
		d.Reply = replyEscalateFailed
		return d
	}
	if err := r.Notifier.NotifyManagers(ctx, user, text, r.context(user.ID)); err != nil {
		log.Printf("❌ escalation delivery failed for user %d: %v", user.ID, err)
		d.Reply = replyEscalateFailed
		return d
	}
	d.Reply = replyEscalated
	return d
}

func (r *Resolver) unknownDecision(user escalate.UserInfo, kind intent.Kind, entities intent.Entities) Decision {
	reply := pickTemplate(r.rng, intent.Unknown)

	var recent []history.Entry
	if r.History != nil {
		recent, _ = r.History.Recent(user.ID, historyContextLimit)
	}
	reply += "\n\n" + unknownSuggestion(recent)

	return Decision{Kind: DecisionTemplate, Intent: kind, Entities: entities, Reply: reply}
}

// context builds the page context from the user's recent history.
func (r *Resolver) context(userID int64) []escalate.ContextMessage {
	if r.History == nil {
		return nil
	}
	recent, err := r.History.Recent(userID, historyContextLimit)
	if err != nil {
		log.Printf("❌ history lookup failed for user %d: %v", userID, err)
		return nil
	}
	msgs := make([]escalate.ContextMessage, len(recent))
	for i, e := range recent {
		msgs[i] = escalate.ContextMessage{Text: e.Text, IsBot: e.IsBot}
	}
	return msgs
}

// finish records the outcome on the session and logs the bot reply.
func (r *Resolver) finish(user escalate.UserInfo, d Decision) Decision {
	r.Sessions.RecordAIResponse(user.ID)
	r.Sessions.StopTyping(user.ID)
	if d.Reply != "" {
		r.append(user, d.Reply, true)
	}
	return d
}

func (r *Resolver) append(user escalate.UserInfo, text string, isBot bool) {
	if r.History == nil {
		return
	}
	meta := history.UserMeta{Username: user.Username, FirstName: user.FirstName, LastName: user.LastName}
	if err := r.History.Append(user.ID, meta, text, isBot); err != nil {
		log.Printf("❌ failed to log message for user %d: %v", user.ID, err)
	}
}
