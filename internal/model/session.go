package model

import "time"

// ItemRef identifies the drink or food item a conversation is currently
// about, in just enough detail for the suggestion rules.
type ItemRef struct {
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Size        string `json:"size,omitempty"`
	Temperature string `json:"temperature,omitempty"`
}

// SessionContext is the typed conversational context attached to a session.
// Patches are merged field-wise: nil/empty fields leave the stored value alone.
type SessionContext struct {
	LastItem       *ItemRef          `json:"lastItem,omitempty"`
	LastSuggestion *time.Time        `json:"lastSuggestion,omitempty"`
	LastUpdated    *time.Time        `json:"lastUpdated,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// Merge applies a patch on top of the receiver and returns the result.
func (c SessionContext) Merge(patch SessionContext) SessionContext {
	out := c
	if patch.LastItem != nil {
		out.LastItem = patch.LastItem
	}
	if patch.LastSuggestion != nil {
		out.LastSuggestion = patch.LastSuggestion
	}
	if patch.LastUpdated != nil {
		out.LastUpdated = patch.LastUpdated
	}
	if len(patch.Extra) > 0 {
		merged := make(map[string]string, len(c.Extra)+len(patch.Extra))
		for k, v := range c.Extra {
			merged[k] = v
		}
		for k, v := range patch.Extra {
			merged[k] = v
		}
		out.Extra = merged
	}
	return out
}

// SessionUserInfo captures what is known about the customer bound to a session.
type SessionUserInfo struct {
	Name        string     `json:"name,omitempty"`
	UserType    string     `json:"userType,omitempty"`
	OrderCount  int        `json:"orderCount,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

// Session is the server-side record of an in-progress conversation, distinct
// from any transport-level connection.
type Session struct {
	ID           string          `gorm:"primaryKey;size:128" json:"id"`
	UserID       string          `gorm:"index;size:128" json:"user_id"`
	Context      SessionContext  `gorm:"serializer:json" json:"context"`
	UserInfo     SessionUserInfo `gorm:"serializer:json" json:"user_info"`
	CreatedAt    time.Time       `json:"created_at"`
	LastActivity time.Time       `gorm:"index" json:"last_activity"`
}
