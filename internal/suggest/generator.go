// Package suggest produces ranked lists of candidate next actions for the
// conversational agent.
package suggest

import (
	"context"
	"fmt"
	"log"
	"time"

	"brewbyte-backend/internal/memory"
	"brewbyte-backend/internal/model"
	"brewbyte-backend/internal/session"
	"brewbyte-backend/internal/store"
)

// Group is one ordered block of suggestions.
type Group struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Item is a single actionable suggestion.
type Item struct {
	Text   string `json:"text"`
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

// Variation is the payload of a contextual variation suggestion.
type Variation struct {
	Temperature   string `json:"temperature,omitempty"`
	Size          string `json:"size,omitempty"`
	Customization string `json:"customization,omitempty"`
}

// FactsRetriever is the optional long-term memory capability. A nil
// retriever disables the personalized group; callers compile and run
// identically either way.
type FactsRetriever interface {
	UserFacts(ctx context.Context, userID string, limit int) ([]memory.Fact, error)
}

// Generator combines persistence aggregates with session context.
type Generator struct {
	store    store.Store
	sessions *session.Manager
	facts    FactsRetriever
}

// NewGenerator creates a suggestion generator. facts may be nil.
func NewGenerator(s store.Store, sessions *session.Manager, facts FactsRetriever) *Generator {
	return &Generator{store: s, sessions: sessions, facts: facts}
}

// Generate evaluates the suggestion rules in fixed priority order, appending
// each non-empty group: personalized memory facts, the user's favorites,
// variations on the current item, items trending today, and finally a static
// quick-actions group when nothing else applied. The result is never empty.
// conversationContext carries agent-supplied key/values that are folded into
// the session for later turns.
func (g *Generator) Generate(ctx context.Context, userID, sessionID string, currentItem *model.ItemRef, conversationContext map[string]string) ([]Group, error) {
	item := currentItem
	if sessionID != "" {
		snapshot := g.sessions.Snapshot(ctx, sessionID)
		if item == nil {
			item = snapshot.LastItem
		}

		now := time.Now().UTC()
		patch := model.SessionContext{LastSuggestion: &now, Extra: conversationContext}
		if currentItem != nil {
			patch.LastItem = currentItem
		}
		if _, err := g.sessions.UpdateContext(ctx, sessionID, patch); err != nil {
			log.Printf("Error updating session %s context: %v", sessionID, err)
		}
	}

	var groups []Group

	if personalized := g.personalizedGroup(ctx, userID); personalized != nil {
		groups = append(groups, *personalized)
	}

	favorites, err := g.favoritesGroup(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites != nil {
		groups = append(groups, *favorites)
	}

	if variations := variationsGroup(item); variations != nil {
		groups = append(groups, *variations)
	}

	trending, err := g.trendingGroup(ctx)
	if err != nil {
		return nil, err
	}
	if trending != nil {
		groups = append(groups, *trending)
	}

	if len(groups) == 0 {
		groups = append(groups, defaultGroup())
	}
	return groups, nil
}

// personalizedGroup surfaces long-term memory facts. The memory service being
// absent or failing degrades silently to no group.
func (g *Generator) personalizedGroup(ctx context.Context, userID string) *Group {
	if g.facts == nil {
		return nil
	}
	facts, err := g.facts.UserFacts(ctx, userID, 3)
	if err != nil {
		log.Printf("Error retrieving memory facts for user %s: %v", userID, err)
		return nil
	}
	if len(facts) == 0 {
		return nil
	}

	items := make([]Item, 0, len(facts))
	for _, f := range facts {
		items = append(items, Item{
			Text:   f.Statement,
			Action: "recall_preference",
			Data:   f,
		})
	}
	return &Group{Type: "personalized", Title: "Just for You", Items: items}
}

func (g *Generator) favoritesGroup(ctx context.Context, userID string) (*Group, error) {
	user, err := g.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	favorites, err := g.store.FavoriteItems(ctx, userID, 3)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return nil, nil
	}

	items := make([]Item, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, Item{
			Text:   fmt.Sprintf("%s (%s, %s)", f.Name, f.Size, f.Temperature),
			Action: "order_favorite",
			Data:   f,
		})
	}
	return &Group{Type: "favorites", Title: "Your Favorites", Items: items}, nil
}

// variationsGroup derives customization suggestions purely from the item
// under discussion.
func variationsGroup(item *model.ItemRef) *Group {
	if item == nil {
		return nil
	}

	var items []Item
	switch item.Temperature {
	case "hot":
		items = append(items, Item{
			Text:   "Make it iced",
			Action: "modify_temperature",
			Data:   Variation{Temperature: "iced"},
		})
	case "iced":
		items = append(items, Item{
			Text:   "Make it hot",
			Action: "modify_temperature",
			Data:   Variation{Temperature: "hot"},
		})
	}

	if item.Size != "large" {
		items = append(items, Item{
			Text:   "Upgrade to large",
			Action: "modify_size",
			Data:   Variation{Size: "large"},
		})
	}

	if item.Category == "coffee" {
		items = append(items,
			Item{Text: "Add extra shot", Action: "add_customization", Data: Variation{Customization: "extra_shot"}},
			Item{Text: "With oat milk", Action: "add_customization", Data: Variation{Customization: "oat_milk"}},
		)
	}

	if len(items) == 0 {
		return nil
	}
	return &Group{Type: "variations", Title: "Customize Your Order", Items: items}
}

func (g *Generator) trendingGroup(ctx context.Context) (*Group, error) {
	trending, err := g.store.TrendingToday(ctx, time.Now().UTC(), 3)
	if err != nil {
		return nil, err
	}
	if len(trending) == 0 {
		return nil, nil
	}

	items := make([]Item, 0, len(trending))
	for _, t := range trending {
		items = append(items, Item{Text: t.Name, Action: "order_popular", Data: t})
	}
	return &Group{Type: "trending", Title: "Popular Today", Items: items}, nil
}

func defaultGroup() Group {
	return Group{
		Type:  "quick_actions",
		Title: "Quick Actions",
		Items: []Item{
			{Text: "View menu", Action: "view_menu"},
			{Text: "Surprise me!", Action: "random_suggestion"},
			{Text: "What's new?", Action: "whats_new"},
		},
	}
}
