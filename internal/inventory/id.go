package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/numjklpp1/parts-management-pro/internal/models"
)

// NewRecordID builds a human-readable record id:
// {category initial}-{yyyymmdd}-{4 random hex chars}. Uniqueness is
// best-effort; the random suffix makes collisions unlikely, not
// impossible, and the ledger tolerates them.
func NewRecordID(category models.PartCategory) string {
	initial := string([]rune(string(category))[:1])
	date := time.Now().Format("20060102")
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("%s-%s-%s", initial, date, suffix)
}

// Timestamp renders the display-only timestamp carried on each record.
// Ledger order is append order; nothing parses this field back.
func Timestamp() string {
	return time.Now().Format("2006/01/02 15:04:05")
}
