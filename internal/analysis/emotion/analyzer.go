package emotion

import "math"

// Label 表示返回给前端的情绪键名。
type Label string

const (
	Joy     Label = "joy"
	Sadness Label = "sadness"
	Fear    Label = "fear"
	Disgust Label = "disgust"
	Anger   Label = "anger"

	Excitement  Label = "excitement"
	Anxiety     Label = "anxiety"
	Frustration Label = "frustration"
	Contentment Label = "contentment"
)

// BaseScores 保存上游返回的基础情绪强度，取值按约定位于 [0,1]。
type BaseScores struct {
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
	Fear    float64 `json:"fear"`
	Disgust float64 `json:"disgust"`
	Anger   float64 `json:"anger"`
}

// DerivedScores 保存组合情绪，取值总是位于 [0,1]。
type DerivedScores struct {
	Excitement  float64 `json:"excitement"`
	Anxiety     float64 `json:"anxiety"`
	Frustration float64 `json:"frustration"`
	Contentment float64 `json:"contentment"`
}

// Scores 是基础情绪与组合情绪合并后的映射。
type Scores map[Label]float64

// Derive 根据基础情绪计算组合情绪。
func Derive(base BaseScores) DerivedScores {
	return DerivedScores{
		Excitement:  math.Min(1, base.Joy*1.5),
		Anxiety:     math.Min(1, (base.Fear+base.Sadness)/2),
		Frustration: math.Min(1, (base.Anger+base.Sadness)/2),
		Contentment: clamp(base.Joy-base.Sadness, 0, 1),
	}
}

// Combine 计算组合情绪并与基础情绪合并为一个映射。
func Combine(base BaseScores) Scores {
	derived := Derive(base)
	return Scores{
		Joy:     base.Joy,
		Sadness: base.Sadness,
		Fear:    base.Fear,
		Disgust: base.Disgust,
		Anger:   base.Anger,

		Excitement:  derived.Excitement,
		Anxiety:     derived.Anxiety,
		Frustration: derived.Frustration,
		Contentment: derived.Contentment,
	}
}

// Clamp 把基础情绪限制到 [0,1]，用于不可信的打分来源。
func (b BaseScores) Clamp() BaseScores {
	return BaseScores{
		Joy:     clamp(b.Joy, 0, 1),
		Sadness: clamp(b.Sadness, 0, 1),
		Fear:    clamp(b.Fear, 0, 1),
		Disgust: clamp(b.Disgust, 0, 1),
		Anger:   clamp(b.Anger, 0, 1),
	}
}

func clamp(val, lo, hi float64) float64 {
	if math.IsNaN(val) {
		return lo
	}
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
