package mod

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"painter/internal/config"
	"painter/internal/tables"
)

// traderFiles is the trader definition shipped under <mod>/db.
type traderFiles struct {
	Base   json.RawMessage
	Assort json.RawMessage
	Info   traderBase
}

type traderBase struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Location string `json:"location"`
	Avatar   string `json:"avatar"`
}

func loadTraderFiles(dbDir string) (*traderFiles, error) {
	base, err := os.ReadFile(filepath.Join(dbDir, "base.json"))
	if err != nil {
		return nil, fmt.Errorf("loading trader base: %w", err)
	}
	assort, err := os.ReadFile(filepath.Join(dbDir, "assort.json"))
	if err != nil {
		return nil, fmt.Errorf("loading trader assort: %w", err)
	}
	if !json.Valid(assort) {
		return nil, fmt.Errorf("loading trader assort: invalid JSON")
	}

	files := &traderFiles{Base: base, Assort: assort}
	if err := json.Unmarshal(base, &files.Info); err != nil {
		return nil, fmt.Errorf("loading trader base: %w", err)
	}
	if strings.TrimSpace(files.Info.ID) == "" {
		return nil, fmt.Errorf("loading trader base: _id is required")
	}
	return files, nil
}

// avatarRoute is the image route key the client requests for the avatar.
func (f *traderFiles) avatarRoute() string {
	return strings.Replace(f.Info.Avatar, ".jpg", "", 1)
}

// register writes the trader into the traders table. Base and assort are
// copied so later edits to the table never reach the loaded files.
func (f *traderFiles) register(db *tables.Database, questAssort config.QuestAssortConfig) {
	db.Traders[f.Info.ID] = &tables.Trader{
		Assort: append(json.RawMessage(nil), f.Assort...),
		Base:   append(json.RawMessage(nil), f.Base...),
		QuestAssort: tables.QuestAssort{
			Started: cloneOrEmpty(questAssort.Started),
			Success: cloneOrEmpty(questAssort.Success),
			Fail:    cloneOrEmpty(questAssort.Fail),
		},
	}
}

// addLocales writes the trader's display strings into every loaded language.
func (f *traderFiles) addLocales(global tables.LocaleSet, firstName, description string) {
	id := f.Info.ID
	for _, table := range global {
		if table == nil {
			continue
		}
		table[id+" FullName"] = f.Info.Name
		table[id+" FirstName"] = firstName
		table[id+" Nickname"] = f.Info.Nickname
		table[id+" Location"] = f.Info.Location
		table[id+" Description"] = description
	}
}

func cloneOrEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}
