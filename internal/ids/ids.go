package ids

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// New returns a lexicographically sortable identifier suitable for storage keys.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

const submissionRandLen = 8

var submissionIDPattern = regexp.MustCompile(`^SUB-[0-9a-z]{1,13}-[0-9a-z]{1,13}$`)

// NewSubmissionID generates an opaque submission identifier of the form
// SUB-<base36 time>-<base36 random>. The format is part of the wire contract
// and also serves as the key-space guard for the submission store.
func NewSubmissionID(now time.Time) string {
	var b strings.Builder
	b.WriteString("SUB-")
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 36))
	b.WriteByte('-')
	b.WriteString(randBase36(submissionRandLen))
	return b.String()
}

// ValidSubmissionID reports whether id matches the submission id format.
// Only ids passing this check may be turned into storage keys.
func ValidSubmissionID(id string) bool {
	return submissionIDPattern.MatchString(id)
}

func randBase36(n int) string {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		// crypto/rand failing is unrecoverable for id generation
		panic(err)
	}
	v := binary.BigEndian.Uint64(buf[:])
	s := strconv.FormatUint(v, 36)
	if len(s) > n {
		return s[:n]
	}
	return strings.Repeat("0", n-len(s)) + s
}
