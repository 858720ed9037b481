package domain

// RewardItem is a prize redeemable with points.
type RewardItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
	Image  string `json:"img"`
}

// Rewards is the redemption catalog.
var Rewards = []RewardItem{
	{ID: "item1", Name: "血压计", Points: 500, Image: "https://picsum.photos/200?bloodpressure"},
	{ID: "item2", Name: "体重秤", Points: 300, Image: "https://picsum.photos/200?scale"},
	{ID: "item3", Name: "带刻度的水杯", Points: 80, Image: "https://picsum.photos/200?cup"},
	{ID: "item4", Name: "健康教育手册", Points: 50, Image: "https://picsum.photos/200?manual"},
	{ID: "item5", Name: "药盒", Points: 40, Image: "https://picsum.photos/200?pillbox"},
	{ID: "item6", Name: "盐勺", Points: 30, Image: "https://picsum.photos/200?spoon"},
}

// RewardByID looks up a catalog item.
func RewardByID(id string) (RewardItem, bool) {
	for _, r := range Rewards {
		if r.ID == id {
			return r, true
		}
	}
	return RewardItem{}, false
}
