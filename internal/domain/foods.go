package domain

// DefaultFood is the label preselected in the intake form.
const DefaultFood = "饮水/茶"

// Foods is the water content per 100 g of common foods and drinks.
var Foods = mustWaterTable([]FoodWater{
	{"饮水/茶", 100},
	{"米饭", 71},
	{"大米粥", 88},
	{"面条(熟)", 73},
	{"馒头", 40},
	{"花卷", 46},
	{"烧饼", 26},
	{"油饼", 25},
	{"包子", 53},
	{"水饺", 55},
	{"蛋糕", 19},
	{"饼干", 6},
	{"面包", 27},
	{"油条", 22},
	{"馄饨", 59},
	{"鸡/鸭蛋", 74},
	{"牛奶", 84},
	{"豆浆", 96},
	{"牛肉", 70},
	{"猪肉", 55},
	{"羊肉", 73},
	{"鱼虾蟹", 77},
	{"鸡肉", 70},
	{"豆腐脑", 97},
	{"豆腐", 83},
	{"鲜青菜/菌藻", 95},
	{"土豆", 80},
	{"坚果", 3},
	{"板栗", 55},
	{"西瓜", 93},
	{"葡萄", 89},
	{"梨类", 86},
	{"桃子", 89},
	{"李子", 90},
	{"香蕉", 77},
	{"樱桃", 88},
	{"草莓", 91},
	{"苹果", 86},
	{"菠萝", 88},
	{"橙子/柑橘", 87},
	{"火龙果", 84},
	{"黄瓜", 96},
	{"西红柿", 94},
})

func mustWaterTable(rows []FoodWater) *WaterTable {
	t, err := NewWaterTable(rows)
	if err != nil {
		panic(err)
	}
	return t
}
