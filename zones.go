package main

import (
	"fmt"
)

/*
ゾーンの3軸インデックス

    I: 流れ方向のゾーン番号
    J: 鉛直方向の層番号
    K: 幅方向のパレット列番号
*/
type ZoneIndex struct {
	I int
	J int
	K int
}

func (self ZoneIndex) String() string {
	return fmt.Sprintf("(zone=%d, layer=%d, pallet=%d)", self.I, self.J, self.K)
}

/*
ゾーン分割された空間格子

    3軸インデックス (i, j, k) とフラット配列上のオフセットの相互変換、および
    全ゾーン共通の幾何量・積載量を保持する。範囲の検証は構築時に一度だけ行い、
    以降のオフセット計算では検証しない。
*/
type Zones struct {
	n_zone   int // 流れ方向のゾーン数
	n_layer  int // 鉛直方向の層数
	n_pallet int // 幅方向のパレット列数

	dx      float64 // 流れ方向のゾーン長さ, m
	a_gross float64 // 流路の総断面積, m2
	volume  float64 // ゾーン体積, m3

	phi_pack  float64 // 積載率, -
	a_flow    float64 // 有効流路断面積, m2
	perimeter float64 // 濡れぶち長さ, m
	d_h       float64 // 水力直径, m
	v_air     float64 // ゾーン内空気体積, m3

	m_p    float64 // ゾーンあたり産品質量, kg
	a_surf float64 // ゾーンあたり産品表面積, m2
	m_pack float64 // ゾーンあたり包装材質量, kg

	f_pos_js []float64 // 層 j の鉛直方向位置係数, -, [j]
	dist_is  []float64 // 給気口からゾーン i の中心までの距離, m, [i]
}

/*
空間格子を構築する。

    Args:
        gmt: 幾何形状の計算条件（検証済みであること）
        cmd: 品目の物性値
        pkg: 包装材の物性値

    Returns:
        空間格子
*/
func NewZones(gmt *GeometryConfig, cmd *Commodity, pkg *Packaging) (*Zones, error) {
	// 流路の総断面積, m2
	a_gross := gmt.ZoneDimY * gmt.ZoneDimZ

	// 有効流路断面積, m2
	a_flow, err := get_a_flow(a_gross, gmt.PhiPack)
	if err != nil {
		return nil, err
	}

	// 濡れぶち長さ, m
	perimeter := get_wetted_perimeter(gmt.ZoneDimY, gmt.ZoneDimZ, gmt.PhiPack)

	// ゾーン体積, m3
	volume := gmt.ZoneDimX * gmt.ZoneDimY * gmt.ZoneDimZ

	// ゾーンあたり産品質量, kg
	m_p := cmd.RhoBulk * gmt.PhiPack * volume

	// 層 j の鉛直方向位置係数, -
	// 下層ほど給気が届きやすいため大きい値とする。
	f_pos_js := make([]float64, gmt.NLayer)
	for j := 0; j < gmt.NLayer; j++ {
		if gmt.NLayer == 1 {
			f_pos_js[j] = 1.0
		} else {
			f_pos_js[j] = 1.1 - 0.2*float64(j)/float64(gmt.NLayer-1)
		}
	}

	// 給気口からゾーン i の中心までの距離, m
	dist_is := make([]float64, gmt.NZone)
	for i := 0; i < gmt.NZone; i++ {
		dist_is[i] = (float64(i) + 0.5) * gmt.ZoneDimX
	}

	return &Zones{
		n_zone:    gmt.NZone,
		n_layer:   gmt.NLayer,
		n_pallet:  gmt.NPallet,
		dx:        gmt.ZoneDimX,
		a_gross:   a_gross,
		volume:    volume,
		phi_pack:  gmt.PhiPack,
		a_flow:    a_flow,
		perimeter: perimeter,
		d_h:       get_d_h(a_flow, perimeter),
		v_air:     volume * (1.0 - gmt.PhiPack),
		m_p:       m_p,
		a_surf:    cmd.ASpec * m_p,
		m_pack:    pkg.MPackPerM3 * volume,
		f_pos_js:  f_pos_js,
		dist_is:   dist_is,
	}, nil
}

// 総ゾーン数を取得する。
func (self *Zones) n_total() int {
	return self.n_zone * self.n_layer * self.n_pallet
}

/*
3軸インデックスからフラット配列上のオフセットを計算する。

    Notes:
        範囲の検証は構築時に完了しているため、範囲外のインデックスは
        プログラミングエラーとして panic とする。
*/
func (self *Zones) offset(idx ZoneIndex) int {
	if idx.I < 0 || idx.I >= self.n_zone ||
		idx.J < 0 || idx.J >= self.n_layer ||
		idx.K < 0 || idx.K >= self.n_pallet {
		panic(fmt.Sprintf("ゾーンインデックス %v が範囲外である", idx))
	}

	return (idx.I*self.n_layer+idx.J)*self.n_pallet + idx.K
}

// フラット配列上のオフセットから3軸インデックスを復元する。
func (self *Zones) index(offset int) ZoneIndex {
	k := offset % self.n_pallet
	j := (offset / self.n_pallet) % self.n_layer
	i := offset / (self.n_pallet * self.n_layer)

	return ZoneIndex{I: i, J: j, K: k}
}
