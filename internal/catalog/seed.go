package catalog

import "github.com/shopspring/decimal"

// DefaultSeed returns the built-in catalog so the binary runs without a
// seed directory. IDs are explicit and stable so cart lines keyed on them
// stay valid across invocations.
func DefaultSeed() []Book {
	d := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []Book{
		{
			ID: "book-001",
			Name: "长安的荔枝", Author: "马伯庸", Press: "湖南文艺出版社",
			Category: "历史文学", Cover: "pictures/1.jpg",
			Intro:   "以杜牧诗句'一骑红尘妃子笑，无人知是荔枝来'为灵感，基于晚唐历史细节创作。",
			Price:   d("45"), Score: d("8.8"), InStock: true,
		},
		{
			ID: "book-002",
			Name: "三体", Author: "刘慈欣", Press: "重庆出版社",
			Category: "科幻小说", Cover: "pictures/2.jpg",
			Intro:   "中国科幻里程碑作品，讲述地球人类文明与三体文明的碰撞、博弈与生存故事。",
			Price:   d("88"), Score: d("9.4"), InStock: true,
		},
		{
			ID: "book-003",
			Name: "历史的遗憾", Author: "姜半夏", Press: "中国纺织出版社",
			Category: "历史文学", Cover: "pictures/3.jpg",
			Intro:   "文史结合，讲述孔子、韩非、霍去病等历史人物故事。",
			Price:   d("59"), Score: d("7.9"), InStock: false,
		},
		{
			ID: "book-004",
			Name: "月亮与六便士", Author: "毛姆", Press: "上海译文出版社",
			Category: "经典名著", Cover: "pictures/4.jpg",
			Intro:   "讲述证券经纪人查尔斯·思特里克兰德为追求绘画梦想，抛弃家庭远赴巴黎、塔希提岛的故事。",
			Price:   d("48"), Score: d("8.8"), InStock: true,
		},
		{
			ID: "book-005",
			Name: "论语", Author: "孔子及其弟子", Press: "中华书局",
			Category: "经典名著", Cover: "pictures/11.jpg",
			Intro:   "儒家经典著作，集中体现孔子的政治主张、伦理思想、道德观念及教育原则。",
			Price:   d("36"), Score: d("9.2"), InStock: true,
		},
		{
			ID: "book-006",
			Name: "小王子", Author: "安托万·德·圣-埃克苏佩里", Press: "人民文学出版社",
			Category: "经典名著", Cover: "pictures/12.jpg",
			Intro:   "讲述小王子从B-612小行星出发，在星际旅行中遇到的各种人和事，探讨爱与成长。",
			Price:   d("42"), Score: d("9.1"), InStock: true,
		},
		{
			ID: "book-007",
			Name: "破云", Author: "淮上", Press: "青岛出版社",
			Category: "网络小说", Cover: "pictures/poyun.jpg",
			Intro:   "千万金光破云而出，于尘世中贯穿天地。前恭州禁毒总队支队长江停与刑侦副支队长严峫携手侦破连环毒案。",
			Price:   d("88"), Score: d("9.8"), InStock: true,
		},
		{
			ID: "book-008",
			Name: "一级律师", Author: "木苏里", Press: "作家出版社",
			Category: "网络小说", Cover: "pictures/一级律师.png",
			Intro:   "正义之下，公理不朽。燕绥之与顾晏从师生渊源到彼此信赖的伙伴，在星际间捍卫律法正义。",
			Price:   d("78"), Score: d("9.8"), InStock: true,
		},
		{
			ID: "book-009",
			Name: "天官赐福", Author: "墨香铜臭", Press: "作家出版社",
			Category: "网络小说", Cover: "pictures/天官.jpg",
			Intro:   "天官赐福，百无禁忌。仙乐太子谢怜三次飞升，与鬼王花城重逢，携手解决一系列事件。",
			Price:   d("98"), Score: d("9.8"), InStock: true,
		},
	}
}
