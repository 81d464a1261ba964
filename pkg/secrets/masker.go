// Package secrets hides registered secret values in text before it reaches
// logs or terminals.
package secrets

import (
	"cmp"
	"io"
	"slices"
	"strings"
	"sync"
)

// Mask replaces every secret occurrence.
const Mask = "*******"

// Masker holds the set of secrets to hide. The zero value is ready to use
// and a Masker is safe for concurrent use.
type Masker struct {
	mu       sync.RWMutex
	secrets  map[string]struct{}
	replacer *strings.Replacer
}

// NewMasker returns a Masker that hides the given secrets.
func NewMasker(secrets ...string) *Masker {
	m := &Masker{}
	m.Add(secrets...)
	return m
}

// Add registers secrets. Empty strings are ignored.
func (m *Masker) Add(secrets ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.secrets == nil {
		m.secrets = make(map[string]struct{})
	}
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		if _, ok := m.secrets[secret]; !ok {
			m.secrets[secret] = struct{}{}
			m.replacer = nil
		}
	}
}

// Len returns the number of registered secrets.
func (m *Masker) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.secrets)
}

// Mask returns s with every registered secret replaced by Mask. Where two
// secrets start at the same position the longer one is replaced.
func (m *Masker) Mask(s string) string {
	if s == "" {
		return s
	}
	r := m.load()
	if r == nil {
		return s
	}
	return r.Replace(s)
}

func (m *Masker) load() *strings.Replacer {
	m.mu.RLock()
	r, n := m.replacer, len(m.secrets)
	m.mu.RUnlock()
	if r != nil || n == 0 {
		return r
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replacer != nil {
		return m.replacer
	}

	ordered := make([]string, 0, len(m.secrets))
	for secret := range m.secrets {
		ordered = append(ordered, secret)
	}
	slices.SortFunc(ordered, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, 2*len(ordered))
	for _, secret := range ordered {
		pairs = append(pairs, secret, Mask)
	}
	m.replacer = strings.NewReplacer(pairs...)
	return m.replacer
}

// Writer returns an io.Writer that masks each chunk before passing it to w.
// A secret split across two Write calls is not detected.
func (m *Masker) Writer(w io.Writer) io.Writer {
	return &maskWriter{m: m, w: w}
}

type maskWriter struct {
	m *Masker
	w io.Writer
}

func (mw *maskWriter) Write(p []byte) (int, error) {
	if _, err := io.WriteString(mw.w, mw.m.Mask(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}
