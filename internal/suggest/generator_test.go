package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"brewbyte-backend/config"
	"brewbyte-backend/internal/db"
	"brewbyte-backend/internal/memory"
	"brewbyte-backend/internal/model"
	"brewbyte-backend/internal/session"
	"brewbyte-backend/internal/store"
)

type stubFacts struct {
	facts []memory.Fact
	err   error
}

func (s *stubFacts) UserFacts(ctx context.Context, userID string, limit int) ([]memory.Fact, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.facts) > limit {
		return s.facts[:limit], nil
	}
	return s.facts, nil
}

func newTestGenerator(t *testing.T, facts FactsRetriever) (*Generator, store.Store, *session.Manager) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))

	appStore := store.NewGormStore(gormDB)
	sessions := session.NewManager(appStore, config.SessionConfig{MaxIdle: 30 * time.Minute})
	return NewGenerator(appStore, sessions, facts), appStore, sessions
}

func seedOrderHistory(t *testing.T, s store.Store, userID string, count int) {
	t.Helper()
	require.NoError(t, s.UpsertUser(context.Background(), &model.User{ID: userID, Name: "Sarah"}))
	for i := 0; i < count; i++ {
		order := &model.Order{UserID: userID, Total: 5.0, Status: model.StatusCompleted, Items: []model.OrderItem{
			{ItemID: "latte", ItemName: "Latte", Category: "coffee", Subcategory: "espresso",
				Size: "medium", Temperature: "hot", Price: 5.0, Quantity: 1},
		}}
		require.NoError(t, s.CreateOrder(context.Background(), order))
	}
}

func groupTypes(groups []Group) []string {
	types := make([]string, 0, len(groups))
	for _, g := range groups {
		types = append(types, g.Type)
	}
	return types
}

func TestGenerate_UnknownUserGetsQuickActions(t *testing.T) {
	g, _, _ := newTestGenerator(t, nil)

	groups, err := g.Generate(context.Background(), "user_nobody", "", nil, nil)
	require.NoError(t, err)

	require.Len(t, groups, 1, "a brand new conversation falls back to the static group")
	assert.Equal(t, "quick_actions", groups[0].Type)
	require.Len(t, groups[0].Items, 3)
	assert.Equal(t, "View menu", groups[0].Items[0].Text)
}

func TestGenerate_Favorites(t *testing.T) {
	g, s, _ := newTestGenerator(t, nil)
	seedOrderHistory(t, s, "user_sarah", 3)

	groups, err := g.Generate(context.Background(), "user_sarah", "", nil, nil)
	require.NoError(t, err)

	types := groupTypes(groups)
	require.Contains(t, types, "favorites")
	require.Contains(t, types, "trending", "today's seeded orders also trend")

	for _, group := range groups {
		if group.Type != "favorites" {
			continue
		}
		require.NotEmpty(t, group.Items)
		assert.Equal(t, "Latte (medium, hot)", group.Items[0].Text)
		assert.Equal(t, "order_favorite", group.Items[0].Action)
	}
}

func TestGenerate_Variations(t *testing.T) {
	g, _, _ := newTestGenerator(t, nil)

	t.Run("hot medium coffee gets the full set", func(t *testing.T) {
		item := &model.ItemRef{Name: "Latte", Category: "coffee", Size: "medium", Temperature: "hot"}
		groups, err := g.Generate(context.Background(), "user_nobody", "", item, nil)
		require.NoError(t, err)

		require.Len(t, groups, 1)
		assert.Equal(t, "variations", groups[0].Type)

		texts := make([]string, 0, len(groups[0].Items))
		for _, it := range groups[0].Items {
			texts = append(texts, it.Text)
		}
		assert.Equal(t, []string{"Make it iced", "Upgrade to large", "Add extra shot", "With oat milk"}, texts)
	})

	t.Run("iced large non-coffee only flips temperature", func(t *testing.T) {
		item := &model.ItemRef{Name: "Iced Tea", Category: "non_coffee", Size: "large", Temperature: "iced"}
		groups, err := g.Generate(context.Background(), "user_nobody", "", item, nil)
		require.NoError(t, err)

		require.Len(t, groups, 1)
		require.Len(t, groups[0].Items, 1)
		assert.Equal(t, "Make it hot", groups[0].Items[0].Text)
	})
}

func TestGenerate_PersonalizedFacts(t *testing.T) {
	facts := &stubFacts{facts: []memory.Fact{
		{Statement: "Prefers oat milk", Rating: 0.9},
		{Statement: "Usually orders in the morning", Rating: 0.8},
	}}
	g, _, _ := newTestGenerator(t, facts)

	groups, err := g.Generate(context.Background(), "user_sarah", "", nil, nil)
	require.NoError(t, err)

	require.NotEmpty(t, groups)
	assert.Equal(t, "personalized", groups[0].Type, "memory facts lead the list")
	assert.Equal(t, "Prefers oat milk", groups[0].Items[0].Text)
	assert.Equal(t, "recall_preference", groups[0].Items[0].Action)
}

func TestGenerate_MemoryFailureDegradesLikeAbsence(t *testing.T) {
	broken := &stubFacts{err: errors.New("memory service unreachable")}
	gBroken, _, _ := newTestGenerator(t, broken)
	withBroken, err := gBroken.Generate(context.Background(), "user_nobody", "", nil, nil)
	require.NoError(t, err, "a failing memory service must not fail suggestions")

	gNone, _, _ := newTestGenerator(t, nil)
	withNone, err := gNone.Generate(context.Background(), "user_nobody", "", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, groupTypes(withNone), groupTypes(withBroken))
}

func TestGenerate_SessionContext(t *testing.T) {
	g, appStore, sessions := newTestGenerator(t, nil)
	ctx := context.Background()

	t.Run("current item is recorded on the session", func(t *testing.T) {
		item := &model.ItemRef{Name: "Mocha", Category: "coffee", Size: "medium", Temperature: "hot"}
		_, err := g.Generate(ctx, "user_nobody", "session_ctx", item, map[string]string{"mood": "celebratory"})
		require.NoError(t, err)

		stored, err := appStore.GetSession(ctx, "session_ctx")
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.NotNil(t, stored.Context.LastItem)
		assert.Equal(t, "Mocha", stored.Context.LastItem.Name)
		assert.NotNil(t, stored.Context.LastSuggestion)
		assert.Equal(t, "celebratory", stored.Context.Extra["mood"])
	})

	t.Run("session item backfills a missing current item", func(t *testing.T) {
		item := &model.ItemRef{Name: "Latte", Category: "coffee", Size: "medium", Temperature: "hot"}
		_, err := sessions.UpdateContext(ctx, "session_fallback", model.SessionContext{LastItem: item})
		require.NoError(t, err)

		groups, err := g.Generate(ctx, "user_nobody", "session_fallback", nil, nil)
		require.NoError(t, err)
		assert.Contains(t, groupTypes(groups), "variations", "the remembered item drives variations")
	})
}
