// Package share renders a finished (or in-progress) session as the
// copyable emoji summary, plus a compact base58 code that encodes the
// same tile sequence for verification.
package share

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"stockle/internal/domain"
	"stockle/internal/game"
	"stockle/internal/lookup"
	"stockle/internal/schedule"
)

// GameName heads the share text.
const GameName = "Stockle"

// ReferenceURL is the static trailing line.
const ReferenceURL = "https://stockle.app"

// Tile glyphs. Green for a matched attribute, dark for everything else.
const (
	TileMatch = "🟩"
	TileMiss  = "⬛"
)

// ErrBadCode is returned when a share code fails to decode.
var ErrBadCode = errors.New("malformed share code")

// Render produces the multi-line share text: header, one tile row per
// guess in chronological order, the share code and the reference URL.
// The tile rows reproduce exactly what the player saw.
func Render(sess *domain.Session, answer *domain.Company, idx *lookup.Index, defs map[domain.NumericAttr]domain.BucketDef) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s %s — %s\n", GameName, sess.Date, summary(sess)))

	for _, mask := range tileMasks(sess, answer, idx, defs) {
		for i := 0; i < domain.AttrCount; i++ {
			if mask&(1<<i) != 0 {
				sb.WriteString(TileMatch)
			} else {
				sb.WriteString(TileMiss)
			}
		}
		sb.WriteString("\n")
	}

	if code, err := Code(sess, answer, idx, defs); err == nil {
		sb.WriteString(code)
		sb.WriteString("\n")
	}
	sb.WriteString(ReferenceURL)
	return sb.String()
}

// summary is the result half of the header line.
func summary(sess *domain.Session) string {
	if sess.Solved {
		return fmt.Sprintf("Solved in %d/%d", len(sess.Guesses), domain.MaxGuesses)
	}
	return fmt.Sprintf("X/%d", domain.MaxGuesses)
}

// tileMasks computes one 7-bit match mask per guess, bit i set when
// verdict i matched, chronological order.
func tileMasks(sess *domain.Session, answer *domain.Company, idx *lookup.Index, defs map[domain.NumericAttr]domain.BucketDef) []uint8 {
	masks := make([]uint8, 0, len(sess.Guesses))
	for _, ticker := range sess.Guesses {
		c, ok := idx.ByTicker(ticker)
		if !ok {
			// Ticker left the dataset after a refresh. The guess still
			// happened, so keep an all-miss row; dropping it would make
			// the rows and code disagree with the header's count.
			masks = append(masks, 0)
			continue
		}
		fb := game.Compare(c, answer, defs)
		var mask uint8
		for i, v := range fb.Verdicts {
			if v.Match {
				mask |= 1 << i
			}
		}
		masks = append(masks, mask)
	}
	return masks
}

// Result is the decoded content of a share code.
type Result struct {
	Day      int // days since epoch
	Solved   bool
	Attempts int
	// Masks holds one 7-bit match mask per guess, chronological.
	Masks []uint8
}

const codeVersion = 1

// Code encodes the session outcome as base58:
// [version][day uint32 BE][solved<<7|attempts][mask per guess].
func Code(sess *domain.Session, answer *domain.Company, idx *lookup.Index, defs map[domain.NumericAttr]domain.BucketDef) (string, error) {
	day, err := schedule.DayNumber(sess.Date)
	if err != nil {
		return "", err
	}

	masks := tileMasks(sess, answer, idx, defs)

	buf := make([]byte, 0, 6+len(masks))
	buf = append(buf, codeVersion)
	buf = binary.BigEndian.AppendUint32(buf, uint32(day))
	head := uint8(len(masks))
	if sess.Solved {
		head |= 1 << 7
	}
	buf = append(buf, head)
	buf = append(buf, masks...)

	return base58.Encode(buf), nil
}

// Decode parses a share code back into its result.
func Decode(code string) (*Result, error) {
	buf, err := base58.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCode, err)
	}
	if len(buf) < 6 || buf[0] != codeVersion {
		return nil, ErrBadCode
	}

	head := buf[5]
	attempts := int(head & 0x7f)
	masks := buf[6:]
	if len(masks) != attempts {
		return nil, ErrBadCode
	}

	return &Result{
		Day:      int(int32(binary.BigEndian.Uint32(buf[1:5]))),
		Solved:   head&(1<<7) != 0,
		Attempts: attempts,
		Masks:    append([]uint8(nil), masks...),
	}, nil
}
