package content

import "github.com/dmitrijs2005/kotoba/internal/client/models"

var vocabulary = []models.VocabularyItem{
	{ID: "v-n5-001", Word: "水", Reading: "みず", Meaning: "water", Level: models.LevelN5, Example: "水を飲みます。"},
	{ID: "v-n5-002", Word: "学校", Reading: "がっこう", Meaning: "school", Level: models.LevelN5, Example: "学校に行きます。"},
	{ID: "v-n5-003", Word: "食べる", Reading: "たべる", Meaning: "to eat", Level: models.LevelN5, Example: "朝ごはんを食べる。"},
	{ID: "v-n4-001", Word: "経験", Reading: "けいけん", Meaning: "experience", Level: models.LevelN4, Example: "いい経験になりました。"},
	{ID: "v-n4-002", Word: "準備", Reading: "じゅんび", Meaning: "preparation", Level: models.LevelN4, Example: "旅行の準備をする。"},
	{ID: "v-n3-001", Word: "具体的", Reading: "ぐたいてき", Meaning: "concrete, specific", Level: models.LevelN3, Example: "具体的に説明してください。"},
	{ID: "v-n2-001", Word: "把握", Reading: "はあく", Meaning: "grasp, understanding", Level: models.LevelN2, Example: "状況を把握する。"},
	{ID: "v-n1-001", Word: "携わる", Reading: "たずさわる", Meaning: "to be involved in", Level: models.LevelN1, Example: "教育に携わる。"},
}

var grammar = []models.GrammarPoint{
	{
		ID: "g-n5-001", Title: "です / だ", Pattern: "Noun + です", Level: models.LevelN5,
		Explanation: "Polite copula: states that something is something.",
		Examples:    []string{"学生です。", "これは本です。"},
	},
	{
		ID: "g-n5-002", Title: "〜たい", Pattern: "Verb stem + たい", Level: models.LevelN5,
		Explanation: "Expresses the speaker's wish to do something.",
		Examples:    []string{"日本に行きたい。"},
	},
	{
		ID: "g-n4-001", Title: "〜てしまう", Pattern: "Verb て-form + しまう", Level: models.LevelN4,
		Explanation: "Completion of an action, often with regret.",
		Examples:    []string{"ケーキを全部食べてしまった。"},
	},
	{
		ID: "g-n3-001", Title: "〜ようにする", Pattern: "Verb dictionary form + ようにする", Level: models.LevelN3,
		Explanation: "Making an effort to do something habitually.",
		Examples:    []string{"毎日運動するようにしています。"},
	},
	{
		ID: "g-n2-001", Title: "〜に反して", Pattern: "Noun + に反して", Level: models.LevelN2,
		Explanation: "Contrary to an expectation or rule.",
		Examples:    []string{"予想に反して、試験は簡単だった。"},
	},
	{
		ID: "g-n1-001", Title: "〜をものともせず", Pattern: "Noun + をものともせず", Level: models.LevelN1,
		Explanation: "Undaunted by an obstacle.",
		Examples:    []string{"嵐をものともせず、船は出航した。"},
	},
}

var reading = []models.ReadingPassage{
	{
		ID: "r-n5-001", Title: "わたしの一日", Level: models.LevelN5,
		Body:        "わたしは毎朝七時に起きます。朝ごはんを食べて、学校に行きます。",
		Translation: "I get up at seven every morning. I eat breakfast and go to school.",
		Questions:   []string{"何時に起きますか。", "朝ごはんのあと、どこに行きますか。"},
	},
	{
		ID: "r-n4-001", Title: "雨の日", Level: models.LevelN4,
		Body:        "昨日は雨が降っていたので、一日中家で本を読んでいました。",
		Translation: "It was raining yesterday, so I stayed home reading all day.",
		Questions:   []string{"昨日の天気はどうでしたか。"},
	},
	{
		ID: "r-n3-001", Title: "駅の忘れ物", Level: models.LevelN3,
		Body:        "駅員によると、毎日百個以上の忘れ物が届けられるそうだ。",
		Translation: "According to station staff, more than a hundred lost items are handed in every day.",
		Questions:   []string{"毎日いくつの忘れ物が届けられますか。"},
	},
}
