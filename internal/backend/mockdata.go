package backend

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/donut-tui/donut-tui/internal/model"
)

// seededRand derives a deterministic source from a document ID so
// repeated extractions of the same document agree.
func seededRand(id string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(id))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// sampleValue fabricates a plausible extracted value for a field.
func sampleValue(f model.FieldDef, rng *rand.Rand) string {
	switch f.Type {
	case "number":
		return fmt.Sprintf("%d", 100+rng.Intn(9900))
	case "currency":
		return fmt.Sprintf("%.2f", 50+rng.Float64()*9950)
	case "date":
		return fmt.Sprintf("2026-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28))
	case "table":
		return fmt.Sprintf("%d rows", 2+rng.Intn(18))
	default:
		return fmt.Sprintf("%s-%04d", sanitizeWord(f.Name), rng.Intn(10000))
	}
}

func sanitizeWord(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+32)
		case r == ' ':
			out = append(out, '-')
		}
	}
	if len(out) == 0 {
		return "value"
	}
	return string(out)
}
