package tables

// Configs holds the host config sections the mod touches.
type Configs struct {
	Trader    TraderConfig
	Ragfair   RagfairConfig
	Item      ItemConfig
	Inventory InventoryConfig
}

type TraderConfig struct {
	UpdateTime []UpdateTime `json:"updateTime"`
}

type UpdateTime struct {
	TraderID string `json:"traderId"`
	Seconds  MinMax `json:"seconds"`
}

type MinMax struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type RagfairConfig struct {
	Traders map[string]bool `json:"traders"`
}

type ItemConfig struct {
	LootableItemBlacklist []string `json:"lootableItemBlacklist"`
}

type InventoryConfig struct {
	RandomLootContainers map[string]*RewardDetails `json:"randomLootContainers"`
}

type RewardDetails struct {
	RewardCount   int            `json:"rewardCount"`
	FoundInRaid   bool           `json:"foundInRaid"`
	RewardTplPool map[string]int `json:"rewardTplPool"`
}

func NewConfigs() *Configs {
	return &Configs{
		Ragfair:   RagfairConfig{Traders: make(map[string]bool)},
		Inventory: InventoryConfig{RandomLootContainers: make(map[string]*RewardDetails)},
	}
}

// SetUpdateTime registers the refresh window for a trader, replacing any
// existing record for the same trader.
func (c *TraderConfig) SetUpdateTime(record UpdateTime) {
	for i := range c.UpdateTime {
		if c.UpdateTime[i].TraderID == record.TraderID {
			c.UpdateTime[i] = record
			return
		}
	}
	c.UpdateTime = append(c.UpdateTime, record)
}

// ImageRouter maps request paths to image files on disk.
type ImageRouter interface {
	AddRoute(key, path string)
}

type ImageRoutes map[string]string

func (r ImageRoutes) AddRoute(key, path string) {
	r[key] = path
}
