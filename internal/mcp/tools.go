package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"painter/internal/store"
)

type GetQuestInput struct {
	ID string `json:"id" jsonschema:"quest id"`
}

type GetLocaleStringInput struct {
	Key  string `json:"key" jsonschema:"locale key, e.g. '<quest id> name'"`
	Lang string `json:"lang,omitempty" jsonschema:"server language code, defaults to the reference language"`
}

type ListCustomItemsInput struct {
	Group string `json:"group,omitempty" jsonschema:"figurine or lootbox"`
}

type SearchContentInput struct {
	Query  string `json:"query" jsonschema:"search terms; supports \"phrases\", -term and OR"`
	Kind   string `json:"kind,omitempty" jsonschema:"quest, locale, item or trader"`
	Locale string `json:"locale,omitempty" jsonschema:"restrict locale strings to one language"`
}

type ListLanguagesInput struct{}

type GetTraderInput struct {
	ID string `json:"id" jsonschema:"trader id"`
}

type QuestOutput struct {
	ID    string         `json:"id"`
	Quest map[string]any `json:"quest"`
}

type LocaleStringOutput struct {
	Key   string `json:"key"`
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type CustomItemOutput struct {
	ID          string `json:"id"`
	Group       string `json:"group"`
	Name        string `json:"name"`
	Clone       string `json:"clone"`
	Created     bool   `json:"created"`
	FleaPrice   int    `json:"flea_price"`
	Blacklisted bool   `json:"blacklisted"`
}

type ListCustomItemsOutput struct {
	Items []CustomItemOutput `json:"items"`
}

type SearchResultOutput struct {
	Kind    string  `json:"kind"`
	Key     string  `json:"key"`
	Locale  string  `json:"locale,omitempty"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
}

type SearchContentOutput struct {
	Results []SearchResultOutput `json:"results"`
}

type LanguageOutput struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Strings int    `json:"strings"`
}

type ListLanguagesOutput struct {
	Languages []LanguageOutput `json:"languages"`
}

type UpdateTimeOutput struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type QuestAssortOutput struct {
	Started map[string]string `json:"started"`
	Success map[string]string `json:"success"`
	Fail    map[string]string `json:"fail"`
}

type TraderOutput struct {
	ID          string            `json:"id"`
	Base        map[string]any    `json:"base"`
	QuestAssort QuestAssortOutput `json:"quest_assort"`
	Strings     map[string]string `json:"strings"`
	UpdateTime  *UpdateTimeOutput `json:"update_time,omitempty"`
	OnRagfair   bool              `json:"on_ragfair"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_quest",
		Description: "Return a quest record from the patched quest table",
	}, s.handleGetQuest)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_locale_string",
		Description: "Return one display string in one language",
	}, s.handleGetLocaleString)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_custom_items",
		Description: "List the mod's custom items and whether each was created",
	}, s.handleListCustomItems)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_content",
		Description: "Search quests, locale strings, items and traders",
	}, s.handleSearchContent)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_languages",
		Description: "List loaded languages with their string counts",
	}, s.handleListLanguages)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_trader",
		Description: "Return a trader's base, quest assort, display strings and refresh window",
	}, s.handleGetTrader)
}

func (s *Server) handleGetQuest(ctx context.Context, req *sdk.CallToolRequest, input GetQuestInput) (*sdk.CallToolResult, QuestOutput, error) {
	if input.ID == "" {
		return nil, QuestOutput{}, fmt.Errorf("id is required")
	}
	raw, ok := s.content.Quest(input.ID)
	if !ok {
		return nil, QuestOutput{}, fmt.Errorf("quest not found: %s", input.ID)
	}
	quest, err := decodeObject(raw)
	if err != nil {
		return nil, QuestOutput{}, fmt.Errorf("decoding quest %s: %w", input.ID, err)
	}
	return nil, QuestOutput{ID: input.ID, Quest: quest}, nil
}

func (s *Server) handleGetLocaleString(ctx context.Context, req *sdk.CallToolRequest, input GetLocaleStringInput) (*sdk.CallToolResult, LocaleStringOutput, error) {
	if input.Key == "" {
		return nil, LocaleStringOutput{}, fmt.Errorf("key is required")
	}
	lang := input.Lang
	if lang == "" {
		lang = s.content.Reference()
	}
	value, ok := s.content.LocaleString(lang, input.Key)
	if !ok {
		return nil, LocaleStringOutput{}, fmt.Errorf("locale string not found: %s/%s", lang, input.Key)
	}
	return nil, LocaleStringOutput{Key: input.Key, Lang: lang, Value: value}, nil
}

func (s *Server) handleListCustomItems(ctx context.Context, req *sdk.CallToolRequest, input ListCustomItemsInput) (*sdk.CallToolResult, ListCustomItemsOutput, error) {
	items := s.content.CustomItems()
	output := make([]CustomItemOutput, 0, len(items))
	for _, item := range items {
		if input.Group != "" && item.Group != input.Group {
			continue
		}
		output = append(output, customItemOutput(item))
	}
	return nil, ListCustomItemsOutput{Items: output}, nil
}

func (s *Server) handleSearchContent(ctx context.Context, req *sdk.CallToolRequest, input SearchContentInput) (*sdk.CallToolResult, SearchContentOutput, error) {
	if input.Query == "" {
		return nil, SearchContentOutput{}, fmt.Errorf("query is required")
	}
	if s.index == nil {
		return nil, SearchContentOutput{}, fmt.Errorf("search index unavailable")
	}
	results, err := s.index.Search(ctx, input.Query, input.Kind, input.Locale)
	if err != nil {
		return nil, SearchContentOutput{}, err
	}

	output := make([]SearchResultOutput, 0, len(results))
	for _, result := range results {
		output = append(output, searchResultOutput(result))
	}
	return nil, SearchContentOutput{Results: output}, nil
}

func (s *Server) handleListLanguages(ctx context.Context, req *sdk.CallToolRequest, input ListLanguagesInput) (*sdk.CallToolResult, ListLanguagesOutput, error) {
	languages := s.content.Languages()
	output := make([]LanguageOutput, 0, len(languages))
	for _, lang := range languages {
		output = append(output, LanguageOutput{Code: lang.Code, Name: lang.Name, Strings: lang.Strings})
	}
	return nil, ListLanguagesOutput{Languages: output}, nil
}

func (s *Server) handleGetTrader(ctx context.Context, req *sdk.CallToolRequest, input GetTraderInput) (*sdk.CallToolResult, TraderOutput, error) {
	if input.ID == "" {
		return nil, TraderOutput{}, fmt.Errorf("id is required")
	}
	trader, ok := s.content.Trader(input.ID)
	if !ok {
		return nil, TraderOutput{}, fmt.Errorf("trader not found: %s", input.ID)
	}
	output, err := traderOutput(trader)
	if err != nil {
		return nil, TraderOutput{}, err
	}
	return nil, output, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	out := map[string]any{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func customItemOutput(item CustomItemStatus) CustomItemOutput {
	return CustomItemOutput{
		ID:          item.ID,
		Group:       item.Group,
		Name:        item.Name,
		Clone:       item.Clone,
		Created:     item.Created,
		FleaPrice:   item.FleaPrice,
		Blacklisted: item.Blacklisted,
	}
}

func searchResultOutput(result store.SearchResult) SearchResultOutput {
	return SearchResultOutput{
		Kind:    result.Kind,
		Key:     result.Key,
		Locale:  result.Locale,
		Title:   result.Title,
		Score:   result.Score,
		Snippet: result.Snippet,
	}
}

func traderOutput(trader *TraderView) (TraderOutput, error) {
	base, err := decodeObject(trader.Base)
	if err != nil {
		return TraderOutput{}, fmt.Errorf("decoding trader %s base: %w", trader.ID, err)
	}
	out := TraderOutput{
		ID:   trader.ID,
		Base: base,
		QuestAssort: QuestAssortOutput{
			Started: nonNil(trader.QuestAssort.Started),
			Success: nonNil(trader.QuestAssort.Success),
			Fail:    nonNil(trader.QuestAssort.Fail),
		},
		Strings:   nonNil(trader.Strings),
		OnRagfair: trader.OnRagfair,
	}
	if trader.UpdateTime != nil {
		out.UpdateTime = &UpdateTimeOutput{Min: trader.UpdateTime.Min, Max: trader.UpdateTime.Max}
	}
	return out, nil
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return maps.Clone(m)
}
