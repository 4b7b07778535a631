package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber produces a human-readable, unique order number such as
// "NS-20260830-7F3A2C". The random suffix comes from a v4 UUID, so collisions
// within a day are practically impossible; the unique index on orders is the
// hard guarantee.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("NS-%s-%s", time.Now().Format("20060102"), suffix)
}
