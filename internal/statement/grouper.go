package statement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Group is one logical transaction under construction.
type Group struct {
	Line       int // source line of the group-start row
	Date       string
	Fragments  []string
	Withdrawal decimal.NullDecimal
	Deposit    decimal.NullDecimal
	Balance    decimal.NullDecimal

	lastSeen decimal.NullDecimal // latest balance, zero included
}

type groupState int

const (
	awaitingGroup groupState = iota
	accumulating
	closing
)

func (s groupState) String() string {
	switch s {
	case accumulating:
		return "accumulating"
	case closing:
		return "closing"
	default:
		return "awaiting"
	}
}

// grouper folds rows into groups. A row with a date opens a group; a raw-text
// terminal amount line closes it.
type grouper struct {
	opts        Options
	state       groupState
	cur         *Group
	groups      []Group
	lastBalance decimal.NullDecimal
}

// newGrouper creates a grouper in the awaiting state.
func newGrouper(opts Options) *grouper {
	return &grouper{opts: opts, lastBalance: opts.OpeningBalance}
}

// feed consumes one row.
func (g *grouper) feed(r row) {
	switch {
	case r.date != "":
		g.close()
		g.cur = &Group{Line: r.line, Date: r.date}
		g.state = accumulating
	case g.state == awaitingGroup:
		if r.description != "" || r.terminal {
			g.opts.Logger.Debug().Int("line", r.line).Msg("row before first date discarded")
		}
		return
	}

	g.absorb(r)
	if r.terminal {
		g.state = closing
		g.close()
	}
}

// finish closes any open group and returns all groups in input order.
func (g *grouper) finish() []Group {
	g.close()
	return g.groups
}

func (g *grouper) absorb(r row) {
	if r.description != "" {
		g.cur.Fragments = append(g.cur.Fragments, r.description)
	}
	overwrite(&g.cur.Withdrawal, r.withdrawal)
	overwrite(&g.cur.Deposit, r.deposit)
	overwrite(&g.cur.Balance, r.balance)
	overwrite(&g.cur.lastSeen, r.rawBalance)

	if r.terminal && r.amount.Valid {
		if g.isDeposit(r.amount.Decimal, r.rawBalance) {
			g.cur.Deposit = r.amount
		} else {
			g.cur.Withdrawal = r.amount
		}
	}
}

func overwrite(dst *decimal.NullDecimal, v decimal.NullDecimal) {
	if v.Valid {
		*dst = v
	}
}

// isDeposit decides the side of an unsided amount. A known previous balance
// settles it arithmetically; otherwise the description keywords do.
func (g *grouper) isDeposit(amount decimal.Decimal, balance decimal.NullDecimal) bool {
	if g.lastBalance.Valid && balance.Valid {
		prev := g.lastBalance.Decimal
		switch {
		case prev.Add(amount).Equal(balance.Decimal):
			return true
		case prev.Sub(amount).Equal(balance.Decimal):
			return false
		default:
			return balance.Decimal.GreaterThan(prev)
		}
	}

	desc := strings.ToUpper(strings.Join(g.cur.Fragments, " "))
	for _, kw := range g.opts.DepositKeywords {
		if kw != "" && strings.Contains(desc, strings.ToUpper(kw)) {
			return true
		}
	}
	return false
}

func (g *grouper) close() {
	if g.cur != nil {
		g.groups = append(g.groups, *g.cur)
		if g.cur.lastSeen.Valid {
			g.lastBalance = g.cur.lastSeen
		}
	}
	g.cur = nil
	g.state = awaitingGroup
}
