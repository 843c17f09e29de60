package alias

import (
	"strings"
	"sync"
)

// Party is one address mentioned in a narration and how it was shown.
type Party struct {
	Address string
	Alias   string
}

// Parties records the addresses resolved during one narration, in the
// order they were first seen. A nil *Parties ignores every call.
type Parties struct {
	mu    sync.Mutex
	order []Party
	seen  map[string]int
}

func NewParties() *Parties {
	return &Parties{seen: make(map[string]int)}
}

// Add records address; a later Add for the same address updates its alias
// but keeps its position.
func (p *Parties) Add(address, alias string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if i, ok := p.seen[address]; ok {
		p.order[i].Alias = alias
		return
	}
	p.seen[address] = len(p.order)
	p.order = append(p.order, Party{Address: address, Alias: alias})
}

func (p *Parties) List() []Party {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Party, len(p.order))
	copy(out, p.order)
	return out
}

func (p *Parties) Len() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

// Preamble renders the parties as a block that ends in a blank line, or ""
// when nothing was recorded.
func (p *Parties) Preamble() string {
	parties := p.List()
	if len(parties) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Parties involved:\n")
	for _, party := range parties {
		b.WriteString("  ")
		b.WriteString(party.Address)
		b.WriteString(": ")
		b.WriteString(party.Alias)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
