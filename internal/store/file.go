package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"

	"financeiro/internal/core"
)

// FileStore persists the state as a single JSON document, using the wire
// layout the bot has always written: Portuguese field names and plain
// decimal amounts. Writes go through a temp file plus rename so a crash
// mid-write leaves the previous document intact.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// document is the wire form of core.State.
type document struct {
	Profile      string                        `json:"perfil,omitempty"`
	Nickname     string                        `json:"apelido,omitempty"`
	Participants []string                      `json:"nomes,omitempty"`
	Incomes      map[string]float64            `json:"rendas,omitempty"`
	FixedCosts   map[string]json.RawMessage    `json:"fixos,omitempty"`
	Expenses     map[string]map[string][]entry `json:"gastos,omitempty"`
}

type entry struct {
	Category string  `json:"categoria"`
	Amount   float64 `json:"valor"`
}

func (f *FileStore) Load(_ context.Context) (core.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.State{}, nil
	}
	if err != nil {
		return core.State{}, fmt.Errorf("read state file: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return core.State{}, fmt.Errorf("decode state file: %w", err)
	}
	return fromDocument(doc)
}

func (f *FileStore) Save(_ context.Context, st core.State) error {
	data, err := json.MarshalIndent(toDocument(st), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

func toDocument(st core.State) document {
	doc := document{
		Profile:      string(st.Profile),
		Nickname:     st.Nickname,
		Participants: st.Participants,
	}
	if len(st.Incomes) > 0 {
		doc.Incomes = make(map[string]float64, len(st.Incomes))
		for name, m := range st.Incomes {
			doc.Incomes[name] = centsToWire(m.Cents)
		}
	}
	if len(st.FixedCosts) > 0 {
		doc.FixedCosts = make(map[string]json.RawMessage, len(st.FixedCosts))
		for label, fc := range st.FixedCosts {
			doc.FixedCosts[label] = fixedCostToWire(fc)
		}
	}
	if len(st.Expenses) > 0 {
		doc.Expenses = make(map[string]map[string][]entry, len(st.Expenses))
		for day, byName := range st.Expenses {
			dayDoc := make(map[string][]entry, len(byName))
			for name, entries := range byName {
				wire := make([]entry, len(entries))
				for i, e := range entries {
					wire[i] = entry{Category: e.Category, Amount: centsToWire(e.Amount.Cents)}
				}
				dayDoc[name] = wire
			}
			doc.Expenses[day.String()] = dayDoc
		}
	}
	return doc
}

func fromDocument(doc document) (core.State, error) {
	st := core.State{
		Profile:      core.ProfileKind(doc.Profile),
		Nickname:     doc.Nickname,
		Participants: doc.Participants,
	}
	if len(doc.Incomes) > 0 {
		st.Incomes = make(map[string]core.Money, len(doc.Incomes))
		for name, v := range doc.Incomes {
			st.Incomes[name] = core.Money{Cents: wireToCents(v)}
		}
	}
	if len(doc.FixedCosts) > 0 {
		st.FixedCosts = make(map[string]core.FixedCost, len(doc.FixedCosts))
		for label, raw := range doc.FixedCosts {
			fc, err := fixedCostFromWire(raw)
			if err != nil {
				return core.State{}, fmt.Errorf("decode fixed cost %q: %w", label, err)
			}
			st.FixedCosts[label] = fc
		}
	}
	if len(doc.Expenses) > 0 {
		st.Expenses = make(core.Ledger, len(doc.Expenses))
		for dayStr, byName := range doc.Expenses {
			day, err := core.ParseDate(dayStr)
			if err != nil {
				return core.State{}, fmt.Errorf("decode ledger day %q: %w", dayStr, err)
			}
			dayEntries := make(map[string][]core.Entry, len(byName))
			for name, entries := range byName {
				parsed := make([]core.Entry, len(entries))
				for i, e := range entries {
					parsed[i] = core.Entry{
						Category: e.Category,
						Amount:   core.Money{Cents: wireToCents(e.Amount)},
					}
				}
				dayEntries[name] = parsed
			}
			st.Expenses[day] = dayEntries
		}
	}
	return st, nil
}

// fixedCostToWire keeps the historical dual shape: a bare number for flat
// costs, an object of name→amount for grouped ones.
func fixedCostToWire(fc core.FixedCost) json.RawMessage {
	if fc.IsGroup() {
		obj := make(map[string]float64, len(fc.Items))
		for _, item := range fc.Items {
			obj[item.Name] = centsToWire(item.Amount.Cents)
		}
		raw, _ := json.Marshal(obj)
		return raw
	}
	raw, _ := json.Marshal(centsToWire(fc.Amount.Cents))
	return raw
}

func fixedCostFromWire(raw json.RawMessage) (core.FixedCost, error) {
	var flat float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return core.FixedCost{Amount: core.Money{Cents: wireToCents(flat)}}, nil
	}
	var obj map[string]float64
	if err := json.Unmarshal(raw, &obj); err != nil {
		return core.FixedCost{}, err
	}
	items := make([]core.FixedCostItem, 0, len(obj))
	for name, v := range obj {
		items = append(items, core.FixedCostItem{Name: name, Amount: core.Money{Cents: wireToCents(v)}})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return core.FixedCost{Items: items}, nil
}

func centsToWire(cents int64) float64 {
	return float64(cents) / 100
}

func wireToCents(v float64) int64 {
	return int64(math.Round(v * 100))
}
