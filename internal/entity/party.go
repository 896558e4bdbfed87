package entity

// Party is the ordered roster of members in a battle. Order is the party
// index used for tie-breaks.
type Party struct {
	Members []*Member
}

// NewParty wraps members in a roster.
func NewParty(members []*Member) *Party {
	return &Party{Members: members}
}

// Size returns the number of members, living or not.
func (p *Party) Size() int { return len(p.Members) }

// Living returns the living members in party order.
func (p *Party) Living() []*Member {
	living := make([]*Member, 0, len(p.Members))
	for _, m := range p.Members {
		if m.IsAlive() {
			living = append(living, m)
		}
	}
	return living
}

// AliveMemberCount returns the number of living members.
func (p *Party) AliveMemberCount() int {
	n := 0
	for _, m := range p.Members {
		if m.IsAlive() {
			n++
		}
	}
	return n
}

// Wiped reports whether every member is dead.
func (p *Party) Wiped() bool { return p.AliveMemberCount() == 0 }

// Index returns the party index of the member with id, or -1.
func (p *Party) Index(id string) int {
	for i, m := range p.Members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// TotalHP sums current HP across the roster.
func (p *Party) TotalHP() int {
	total := 0
	for _, m := range p.Members {
		total += m.HP
	}
	return total
}
