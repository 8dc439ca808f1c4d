package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

/*
品目（青果物）の物性値

    呼吸熱の温度依存性はアレニウス型 r(theta) = r_ref * exp(k * (theta - theta_ref)) とする。
    r_ref の単位は W/kg（瞬時値）であり、1時間あたりの積算値ではない。
*/
type Commodity struct {
	Name     string  `csv:"name" json:"name"`
	RhoBulk  float64 `csv:"rho_bulk" json:"rho_bulk" validate:"gt=0"`    // かさ密度, kg/m3
	CSpec    float64 `csv:"c_spec" json:"c_spec" validate:"gt=0"`        // 比熱, J/kg K
	AW       float64 `csv:"a_w" json:"a_w" validate:"gt=0,lte=1"`        // 水分活性, -
	RRef     float64 `csv:"r_ref" json:"r_ref" validate:"gte=0"`         // 基準温度における呼吸熱, W/kg
	KResp    float64 `csv:"k_resp" json:"k_resp" validate:"gte=0"`       // 呼吸熱の温度係数, 1/K
	ThetaRef float64 `csv:"theta_ref" json:"theta_ref"`                  // 呼吸熱の基準温度, degree C
	FWet     float64 `csv:"f_wet" json:"f_wet" validate:"gte=0,lte=1"`   // 表面濡れ率, -
	ASpec    float64 `csv:"a_spec" json:"a_spec" validate:"gt=0"`        // 単位質量あたり表面積, m2/kg
	HM       float64 `csv:"h_m" json:"h_m" validate:"gt=0"`              // 物質伝達率, m/s
	WInit    float64 `csv:"w_init" json:"w_init" validate:"gte=0,lte=1"` // 初期含水率, kg/kg(乾物)
}

// 包装材の物性値
type Packaging struct {
	Name       string  `csv:"name" json:"name"`
	CPack      float64 `csv:"c_pack" json:"c_pack" validate:"gte=0"`              // 比熱, J/kg K
	MPackPerM3 float64 `csv:"m_pack_per_m3" json:"m_pack_per_m3" validate:"gte=0"` // ゾーン体積あたり包装材質量, kg/m3
	RelRough   float64 `csv:"rel_rough" json:"rel_rough" validate:"gte=0"`        // 流路の相対粗度, -
}

/*
品目の物性値の既定テーブルを取得する。

    Returns:
        品目の物性値のリスト

    Notes:
        呼吸熱のパラメータは ASHRAE の公表値を元にした代表値である。
*/
func get_default_commodities() []*Commodity {
	return []*Commodity{
		{Name: "banana", RhoBulk: 640.0, CSpec: 3350.0, AW: 0.98, RRef: 0.060, KResp: 0.104, ThetaRef: 5.0, FWet: 0.10, ASpec: 0.075, HM: 0.005, WInit: 0.74},
		{Name: "apple", RhoBulk: 560.0, CSpec: 3640.0, AW: 0.98, RRef: 0.010, KResp: 0.093, ThetaRef: 0.0, FWet: 0.05, ASpec: 0.060, HM: 0.004, WInit: 0.84},
		{Name: "strawberry", RhoBulk: 590.0, CSpec: 3890.0, AW: 0.99, RRef: 0.050, KResp: 0.120, ThetaRef: 0.0, FWet: 0.20, ASpec: 0.180, HM: 0.007, WInit: 0.90},
		{Name: "broccoli", RhoBulk: 560.0, CSpec: 3850.0, AW: 0.99, RRef: 0.100, KResp: 0.110, ThetaRef: 0.0, FWet: 0.25, ASpec: 0.150, HM: 0.006, WInit: 0.89},
	}
}

// 包装材の物性値の既定テーブルを取得する。
func get_default_packagings() []*Packaging {
	return []*Packaging{
		{Name: "corrugated_box", CPack: 1700.0, MPackPerM3: 25.0, RelRough: 0.002},
		{Name: "plastic_crate", CPack: 1900.0, MPackPerM3: 40.0, RelRough: 0.001},
		{Name: "none", CPack: 0.0, MPackPerM3: 0.0, RelRough: 0.0},
	}
}

/*
品目の物性値を名前から取得する。

    Args:
        name: 品目名
        file_path: 物性値CSVファイルのパス（空文字列の場合は既定テーブルを使用する）

    Returns:
        品目の物性値
*/
func get_commodity(name string, file_path string) (*Commodity, error) {
	cmds := get_default_commodities()

	if file_path != "" {
		file, err := os.Open(file_path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		var rows []*Commodity
		if err := gocsv.UnmarshalFile(file, &rows); err != nil {
			return nil, err
		}

		cmds = rows
	}

	for _, c := range cmds {
		if c.Name == name {
			return c, nil
		}
	}

	return nil, fmt.Errorf("品目 `%s` は物性値テーブルに存在しない", name)
}

/*
包装材の物性値を名前から取得する。

    Args:
        name: 包装材名
        file_path: 物性値CSVファイルのパス（空文字列の場合は既定テーブルを使用する）

    Returns:
        包装材の物性値
*/
func get_packaging(name string, file_path string) (*Packaging, error) {
	pkgs := get_default_packagings()

	if file_path != "" {
		file, err := os.Open(file_path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		var rows []*Packaging
		if err := gocsv.UnmarshalFile(file, &rows); err != nil {
			return nil, err
		}

		pkgs = rows
	}

	for _, p := range pkgs {
		if p.Name == name {
			return p, nil
		}
	}

	return nil, fmt.Errorf("包装材 `%s` は物性値テーブルに存在しない", name)
}
