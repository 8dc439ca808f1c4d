package main

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// 各種バリデーションに用いる相対誤差の許容値
type Tolerances struct {
	Geometric    float64 `json:"geometric" validate:"gt=0"`    // 幾何形状の許容相対誤差, -
	Conservation float64 `json:"conservation" validate:"gt=0"` // 保存則残差の許容相対誤差, -
	Property     float64 `json:"property" validate:"gt=0"`     // 物性値の許容相対誤差, -
	Control      float64 `json:"control" validate:"gt=0"`      // 制御量の許容相対誤差, -
}

/*
コンテナの幾何形状の計算条件

    軸の定義
        x: 流れ方向（ゾーン）
        y: 幅方向（パレット列）
        z: 鉛直方向（層）
*/
type GeometryConfig struct {
	ZoneDimX float64 `json:"zone_dim_x" validate:"gt=0"` // 流れ方向のゾーン寸法, m
	ZoneDimY float64 `json:"zone_dim_y" validate:"gt=0"` // 幅方向のゾーン寸法, m
	ZoneDimZ float64 `json:"zone_dim_z" validate:"gt=0"` // 鉛直方向のゾーン寸法, m

	SystemDimX float64 `json:"system_dim_x" validate:"gt=0"` // 流れ方向のシステム寸法, m
	SystemDimY float64 `json:"system_dim_y" validate:"gt=0"` // 幅方向のシステム寸法, m
	SystemDimZ float64 `json:"system_dim_z" validate:"gt=0"` // 鉛直方向のシステム寸法, m

	NZone   int `json:"n_zone" validate:"gt=0"`   // 流れ方向のゾーン数
	NLayer  int `json:"n_layer" validate:"gt=0"`  // 鉛直方向の層数
	NPallet int `json:"n_pallet" validate:"gt=0"` // 幅方向のパレット列数

	PhiPack float64 `json:"phi_pack" validate:"gt=0,lt=1"` // 積載率, -

	ThetaInit float64 `json:"theta_init"` // 初期温度, degree C

	ThetaMin float64 `json:"theta_min"` // 物理的妥当性の下限温度, degree C
	ThetaMax float64 `json:"theta_max"` // 物理的妥当性の上限温度, degree C

	Tolerances Tolerances `json:"tolerances"`
}

// 既定の許容値を取得する。
func get_default_tolerances() Tolerances {
	return Tolerances{
		Geometric:    0.01,
		Conservation: 0.02,
		Property:     0.01,
		Control:      0.05,
	}
}

/*
幾何形状の計算条件を検証する。

    Returns:
        検証エラー（問題が無い場合は nil）

    Notes:
        (1) 構造体タグによる値域の検証
        (2) ゾーン寸法 × ゾーン数 == システム寸法（幾何許容誤差の範囲内）
        (3) 初期温度が物理的妥当性の範囲内にあること
*/
func (self *GeometryConfig) validate() error {
	if err := validator.New().Struct(self); err != nil {
		return fmt.Errorf("幾何形状の計算条件が不正である: %w", err)
	}

	if self.ThetaMin >= self.ThetaMax {
		return fmt.Errorf("温度範囲の下限 %f degree C が上限 %f degree C 以上である", self.ThetaMin, self.ThetaMax)
	}

	// ゾーン寸法とシステム寸法の整合性
	checks := []struct {
		axis   string
		zone   float64
		count  int
		system float64
	}{
		{"x", self.ZoneDimX, self.NZone, self.SystemDimX},
		{"y", self.ZoneDimY, self.NPallet, self.SystemDimY},
		{"z", self.ZoneDimZ, self.NLayer, self.SystemDimZ},
	}
	for _, c := range checks {
		total := c.zone * float64(c.count)
		if math.Abs(total-c.system)/c.system > self.Tolerances.Geometric {
			return fmt.Errorf(
				"%s 軸のゾーン寸法 %f m × 分割数 %d = %f m がシステム寸法 %f m と整合しない（許容相対誤差 %f）",
				c.axis, c.zone, c.count, total, c.system, self.Tolerances.Geometric)
		}
	}

	if self.ThetaInit < self.ThetaMin || self.ThetaInit > self.ThetaMax {
		return fmt.Errorf(
			"初期温度 %f degree C が物理的妥当性の範囲 [%f, %f] degree C の外にある",
			self.ThetaInit, self.ThetaMin, self.ThetaMax)
	}

	return nil
}
