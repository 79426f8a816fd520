// Package importer builds catalog files from the card database XML. The
// pipeline parses, normalizes, applies the format and diffs against the
// previous snapshot; the same inputs always produce the same bytes.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kakita-works/shugenja/internal/card"
	"github.com/kakita-works/shugenja/internal/catalog"
)

// Options configures a pipeline run
type Options struct {
	Input    string            // card database XML
	Output   string            // catalog JSON to write
	Previous string            // snapshot to diff against; defaults to Output
	Legal    []string          // format legality tags; empty keeps every card
	Banned   map[string]string // card name -> ban reason
	DryRun   bool              // report without writing Output
	Logger   *zap.Logger
}

// Report summarizes a pipeline run
type Report struct {
	Parsed  int
	Skipped int // records without a name or with an unknown type
	Illegal int
	Banned  int
	Written int
	Diff    Diff
}

// Diff lists the card IDs that changed between two snapshots
type Diff struct {
	Added   []string
	Removed []string
	Changed []string
}

// IsEmpty reports whether the snapshots are identical
func (d Diff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Run executes the whole pipeline
func Run(ctx context.Context, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("open card database: %w", err)
	}
	defer file.Close()

	source, err := Parse(file)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Parsed: len(source)}
	records, skipped := Normalize(source, log)
	report.Skipped = skipped

	records, illegal := FilterLegal(records, opts.Legal)
	report.Illegal = illegal
	report.Banned = ApplyBans(records, opts.Banned)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	previousPath := opts.Previous
	if previousPath == "" {
		previousPath = opts.Output
	}
	previous, err := readSnapshot(previousPath)
	if err != nil {
		return nil, err
	}
	report.Diff = Compare(previous, records)

	out, err := Encode(records)
	if err != nil {
		return nil, err
	}
	report.Written = len(records)

	log.Info("catalog built",
		zap.Int("parsed", report.Parsed),
		zap.Int("written", report.Written),
		zap.Int("illegal", report.Illegal),
		zap.Int("added", len(report.Diff.Added)),
		zap.Int("removed", len(report.Diff.Removed)),
		zap.Int("changed", len(report.Diff.Changed)))

	if opts.DryRun || opts.Output == "" {
		return report, nil
	}
	if err := writeFile(opts.Output, out); err != nil {
		return nil, err
	}
	return report, nil
}

// Normalize converts source cards into catalog records. Cards without a
// name or with an unknown type are dropped and counted.
func Normalize(source []SourceCard, log *zap.Logger) ([]catalog.Record, int) {
	if log == nil {
		log = zap.NewNop()
	}

	records := make([]catalog.Record, 0, len(source))
	skipped := 0
	for i := range source {
		r, err := normalizeCard(&source[i], i)
		if err != nil {
			log.Warn("skipping source card", zap.Int("index", i), zap.Error(err))
			skipped++
			continue
		}
		records = append(records, r)
	}
	return records, skipped
}

func normalizeCard(s *SourceCard, index int) (catalog.Record, error) {
	name := strings.Join(strings.Fields(s.Name), " ")
	if name == "" {
		return catalog.Record{}, errors.New("card has no name")
	}
	category, err := card.ParseCategory(s.Type)
	if err != nil {
		return catalog.Record{}, fmt.Errorf("%s: %w", name, err)
	}

	r := catalog.Record{
		ID:        catalog.FlexString(strings.TrimSpace(s.ID)),
		Name:      catalog.FlexString(name),
		Type:      catalog.FlexString(category.String()),
		Clan:      catalog.FlexString(first(s.Clans)),
		Text:      catalog.RawText(s.Text),
		Legality:  trimAll(s.Legal),
		ImagePath: strings.TrimSpace(s.Image),
		Set:       catalog.FlexString(first(s.Editions)),
		Rarity:    catalog.FlexString(strings.TrimSpace(s.Rarity)),
		Artist:    catalog.FlexString(strings.TrimSpace(s.Artist)),
		Flavor:    catalog.RawText(s.Flavor),

		Cost:             stat(s.Cost),
		Force:            stat(s.Force),
		Chi:              stat(s.Chi),
		Focus:            stat(s.Focus),
		PersonalHonor:    stat(s.PersonalHonor),
		HonorRequirement: stat(s.HonorReq),
		GoldProduction:   stat(s.GoldProduction),
	}
	r.ID = catalog.FlexString(catalog.RecordID(&r, index))

	if base, level := card.ParseExperienced(name); level > 0 {
		r.FormattedName = catalog.FlexString(card.FormatExperienced(base, level))
		r.Keywords = []string{card.ExperiencedKeyword(level)}
	}

	if img := strings.TrimSpace(s.BackImage); img != "" || s.BackText != "" {
		r.Back = &catalog.Face{ImagePath: img, Text: catalog.RawText(s.BackText)}
	}
	return r, nil
}

func stat(s string) *catalog.Stat {
	st := catalog.ParseStat(s)
	if !st.Valid {
		return nil
	}
	return &st
}

func first(values []string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// FilterLegal keeps the records carrying any of the legality tags and
// returns how many were dropped. A tag matches a legality value exactly or
// as a parenthesized edition, ignoring case.
func FilterLegal(records []catalog.Record, tags []string) ([]catalog.Record, int) {
	if len(tags) == 0 {
		return records, 0
	}

	kept := make([]catalog.Record, 0, len(records))
	for _, r := range records {
		if isLegal(r.Legality, tags) {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

func isLegal(legality, tags []string) bool {
	for _, value := range legality {
		value = strings.ToLower(value)
		for _, tag := range tags {
			tag = strings.ToLower(tag)
			if value == tag || strings.Contains(value, "("+tag+")") {
				return true
			}
		}
	}
	return false
}

// ApplyBans flags records named in the ban list and returns how many were
// flagged. Records already marked banned keep their reason.
func ApplyBans(records []catalog.Record, bans map[string]string) int {
	flagged := 0
	for i := range records {
		r := &records[i]
		reason, ok := bans[string(r.Name)]
		if !ok && r.FormattedName != "" {
			reason, ok = bans[string(r.FormattedName)]
		}
		if !ok {
			continue
		}
		if !r.Banned {
			r.Banned = true
			r.BannedReason = reason
		}
		flagged++
	}
	return flagged
}

// Compare diffs two snapshots by record ID
func Compare(previous, next []catalog.Record) Diff {
	before := indexByID(previous)
	after := indexByID(next)

	d := Diff{Added: []string{}, Removed: []string{}, Changed: []string{}}
	for id, data := range after {
		old, ok := before[id]
		switch {
		case !ok:
			d.Added = append(d.Added, id)
		case !bytes.Equal(old, data):
			d.Changed = append(d.Changed, id)
		}
	}
	for id := range before {
		if _, ok := after[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Changed)
	return d
}

func indexByID(records []catalog.Record) map[string][]byte {
	index := make(map[string][]byte, len(records))
	for i := range records {
		data, err := json.Marshal(&records[i])
		if err != nil {
			continue
		}
		index[string(records[i].ID)] = data
	}
	return index
}

// Encode writes records as an indented JSON array sorted by ID
func Encode(records []catalog.Record) ([]byte, error) {
	sorted := make([]catalog.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	out, err := json.MarshalIndent(sorted, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return append(out, '\n'), nil
}

func readSnapshot(path string) ([]catalog.Record, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read previous snapshot: %w", err)
	}
	format := catalog.FormatJSON
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		format = catalog.FormatYAML
	}
	records, err := catalog.DecodeRecords(data, format)
	if err != nil {
		return nil, fmt.Errorf("read previous snapshot: %w", err)
	}
	return records, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}
