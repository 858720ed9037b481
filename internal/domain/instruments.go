package domain

import "fmt"

var (
	frequencyOptions  = []Option{{"从不", 1}, {"偶尔", 2}, {"经常", 3}, {"总是", 4}}
	likelihoodOptions = []Option{{"不太可能", 1}, {"有些可能", 2}, {"很有可能", 3}, {"非常可能", 4}}
	confidenceOptions = []Option{{"没有信心", 1}, {"有些信心", 2}, {"很有信心", 3}, {"非常有信心", 4}}
	impactOptions     = []Option{{"没有影响", 0}, {"轻微影响", 1}, {"普通", 3}, {"影响很大", 5}}
	agreementOptions  = []Option{{"完全不正确", 1}, {"有点正确", 2}, {"多数正确", 3}, {"完全正确", 4}}
	daysOptions       = []Option{{"完全没有", 0}, {"有几天", 1}, {"一半以上时间", 2}, {"几乎天天", 3}}
)

// SCHFI is the self-care of heart failure index. Question 11 gates the
// symptom-response section (12-16).
var SCHFI = Instrument{
	ID:   "SCHFI",
	Name: "自我护理量表测评",
	Questions: concatQuestions(
		numberedQuestions(1, 10, "【日常行为】您进行以下行为的频率是？(题%d)", frequencyOptions),
		[]Question{{
			ID:      11,
			Text:    "过去一个月中，您是否有呼吸困难或脚踝肿胀等症状？",
			Options: []Option{{"没有 (跳过后续部分)", 0}, {"有 (继续答题)", 1}},
		}},
		numberedQuestions(12, 5, "【应对措施】当您出现症状时，您采取措施的可能性？(题%d)", likelihoodOptions),
		numberedQuestions(17, 6, "【自我信心】您对自我护理能力的信心程度？(题%d)", confidenceOptions),
	),
	Bands: []Band{
		{60, "管理良好", "太棒了！您对自己的病情管理非常到位，请继续保持。"},
		{40, "管理中等", "您的管理能力尚可，建议多学习“健康宣教”中的饮食和监测知识。"},
		{0, "需要加强", "建议您在家人陪同下重新学习出入量记录，并定期与医生沟通。"},
	},
	Gate: &SkipGate{QuestionID: 11, Score: 0, ResumeID: 17},
}

// MLHFQ is the Minnesota living with heart failure questionnaire. Higher
// scores mean worse quality of life.
var MLHFQ = Instrument{
	ID:        "MLHFQ",
	Name:      "生活质量测评",
	Questions: numberedQuestions(1, 21, "过去一个月，心衰在多大程度上影响您的生活？(题%d)", impactOptions),
	Bands: []Band{
		{46, "严重受损", "心衰严重影响了生活，请务必咨询医生，调整治疗方案。"},
		{25, "中度受损", "您的生活受到了一定限制，建议通过轻微运动改善状态。"},
		{0, "质量良好", "心衰对您的生活影响较小，请保持积极心态。"},
	},
}

// GSES is the general self-efficacy scale.
var GSES = Instrument{
	ID:   "GSES",
	Name: "一般自我效能感测评",
	Questions: textQuestions(agreementOptions,
		"如果我尽力去做，我总是能解决难题的。",
		"即使别人反对我，我仍有办法取得我所想要的东西。",
		"对我来说，坚持自己的理想和目标是轻而易举的。",
		"我自信能从容地应对意外事件。",
		"以我的才智，我能应付意外的局面。",
		"如果我付出必要的努力，我一定能解决大多数的问题。",
		"我能坦然地面对困难，因为我信赖自己处理问题的能力。",
		"面对困难时，我通常能找到几个解决方法。",
		"如果陷入困境，我通常能想出好主意。",
		"不论发生什么事，我都能从容应付。",
	),
	Bands: []Band{
		{31, "效能高", "您对自己处理健康问题的能力非常有信心，这非常有利于康复！"},
		{21, "效能中等", "您的信心水平正常，建议在遇到困难时多寻求医生和家人的支持。"},
		{0, "效能偏低", "您可能觉得管理病情有些力不从心，别担心，我们会一直陪伴您。"},
	},
}

// GAD7 screens for generalised anxiety.
var GAD7 = Instrument{
	ID:        "GAD7",
	Name:      "焦虑测评",
	Questions: numberedQuestions(1, 7, "最近两周内，您感到紧张或担心的频率是？(题%d)", daysOptions),
	Bands: []Band{
		{10, "焦虑偏高", "建议找亲友倾诉，必要时咨询医生。"},
		{5, "轻度焦虑", "建议您多听舒缓音乐，或去公园走走放松心情。"},
		{0, "情绪平稳", "您当前心态很好，请继续保持。"},
	},
}

// PHQ9 screens for depression.
var PHQ9 = Instrument{
	ID:        "PHQ9",
	Name:      "抑郁测评",
	Questions: numberedQuestions(1, 9, "最近两周内，您感到做事提不起劲或心情低落吗？(题%d)", daysOptions),
	Bands: []Band{
		{10, "状态欠佳", "请务必告知家人，并在医生指导下进行调整。"},
		{5, "轻度抑郁", "建议多和老伙伴们聊聊天，培养一些小爱好。"},
		{0, "状态良好", "您的精神状态很不错。"},
	},
}

// Instruments is the survey catalog in display order.
var Instruments = []*Instrument{&SCHFI, &MLHFQ, &GSES, &GAD7, &PHQ9}

// ValidateInstruments validates the whole catalog.
func ValidateInstruments() error {
	for _, in := range Instruments {
		if err := in.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func numberedQuestions(firstID, n int, format string, opts []Option) []Question {
	out := make([]Question, n)
	for i := range out {
		id := firstID + i
		out[i] = Question{ID: id, Text: fmt.Sprintf(format, id), Options: opts}
	}
	return out
}

func textQuestions(opts []Option, texts ...string) []Question {
	out := make([]Question, len(texts))
	for i, t := range texts {
		out[i] = Question{ID: i + 1, Text: t, Options: opts}
	}
	return out
}

func concatQuestions(parts ...[]Question) []Question {
	var out []Question
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
