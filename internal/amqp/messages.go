package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"masareef/internal/core"
)

// MirrorMessage carries one appended transaction to the mirror worker, which
// replays it into the flat-file replica. The payload is self-contained so the
// worker never has to read the primary store.
type MirrorMessage struct {
	UserID      int64           `json:"user_id"`
	Date        string          `json:"date"` // 2006-01-02
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewMirrorMessage builds a mirror message from an appended transaction.
func NewMirrorMessage(userID int64, t core.Transaction) *MirrorMessage {
	return &MirrorMessage{
		UserID:      userID,
		Date:        t.Date.Format("2006-01-02"),
		Type:        string(t.Type),
		Category:    t.Category,
		Source:      t.Source,
		Amount:      t.Amount,
		Description: t.Description,
		Timestamp:   time.Now(),
	}
}

// Transaction reconstructs the ledger transaction, validating the payload.
func (m *MirrorMessage) Transaction() (core.Transaction, error) {
	day, err := time.Parse("2006-01-02", m.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	typ, err := core.ParseTxnType(m.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		Date:        core.DateOf(day),
		Type:        typ,
		Category:    m.Category,
		Source:      m.Source,
		Amount:      m.Amount,
		Description: m.Description,
		UserID:      m.UserID,
	}
	return t, t.Validate()
}

// ToJSON converts the message to JSON bytes
func (m *MirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MirrorMessageFromJSON creates a message from JSON bytes
func MirrorMessageFromJSON(data []byte) (*MirrorMessage, error) {
	var msg MirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
