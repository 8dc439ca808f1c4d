package main

import (
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// 計算結果（時系列）の1行分
type RecordRow struct {
	TimeS         float64 `csv:"time_s"`         // 時刻, s
	DeltaTS       float64 `csv:"delta_t_s"`      // 時間刻み, s
	ThetaPAve     float64 `csv:"theta_p_ave"`    // 産品温度の平均値, degree C
	ThetaPStd     float64 `csv:"theta_p_std"`    // 産品温度の標準偏差, K
	ThetaAAve     float64 `csv:"theta_a_ave"`    // 空気温度の平均値, degree C
	XAAve         float64 `csv:"x_a_ave"`        // 空気絶対湿度の平均値, kg/kgDA
	VAve          float64 `csv:"v_ave"`          // 流速の平均値, m/s
	Uniformity    float64 `csv:"uniformity"`     // 温度均一性指標, -
	Effectiveness float64 `csv:"effectiveness"`  // 冷却有効度, -
	TCPI          float64 `csv:"tcpi"`           // 乱流冷却性能指標, -
	QRespTotal    float64 `csv:"q_resp_total"`   // 呼吸熱の合計, W
	QCvTotal      float64 `csv:"q_cv_total"`     // 対流熱流の合計, W
	QEvapTotal    float64 `csv:"q_evap_total"`   // 蒸散熱の合計, W
	QCoolActual   float64 `csv:"q_cool_actual"`  // 実際の冷却出力, W
	MDehum        float64 `csv:"m_dehum"`        // 除湿量, kg/s
	ThetaCoil     float64 `csv:"theta_coil"`     // コイル温度, degree C
	QCurrent      float64 `csv:"q_current"`      // 冷却能力, W
	Mode          int     `csv:"mode"`           // 運転状態
	MassResMax    float64 `csv:"mass_res_max"`   // 質量保存残差の最大値, -
	EnergyResMax  float64 `csv:"energy_res_max"` // エネルギー保存残差の最大値, -
}

// ゾーン別の最終状態の1行分
type ZoneStateRow struct {
	Zone   int     `csv:"zone"`    // 流れ方向のゾーン番号
	Layer  int     `csv:"layer"`   // 鉛直方向の層番号
	Pallet int     `csv:"pallet"`  // 幅方向のパレット列番号
	ThetaP float64 `csv:"theta_p"` // 産品温度, degree C
	WP     float64 `csv:"w_p"`     // 産品含水率, kg/kg(乾物)
	ThetaA float64 `csv:"theta_a"` // 空気温度, degree C
	XA     float64 `csv:"x_a"`     // 空気絶対湿度, kg/kgDA
	V      float64 `csv:"v"`       // 流速, m/s
	P      float64 `csv:"p"`       // 静圧, Pa
	Rho    float64 `csv:"rho"`     // 空気密度, kg/m3
	MDot   float64 `csv:"m_dot"`   // 質量流量, kg/s
	E      float64 `csv:"e"`       // 蓄熱量, J
	FDev   float64 `csv:"f_dev"`   // 流れの発達係数, -
}

// 計算結果レコーダ
type Recorder struct {
	rows      []*RecordRow
	zone_rows []*ZoneStateRow
}

func NewRecorder() *Recorder {
	return &Recorder{
		rows: make([]*RecordRow, 0),
	}
}

// 性能指標と冷却ユニットの状態を1行追記する。
func (self *Recorder) append(snap *PerformanceSnapshot, c_n *Conditions, zones *Zones, cu *CoolingUnit) {
	self.rows = append(self.rows, &RecordRow{
		TimeS:         snap.Time,
		DeltaTS:       snap.DeltaT,
		ThetaPAve:     snap.ThetaPAve,
		ThetaPStd:     snap.ThetaPStd,
		ThetaAAve:     snap.ThetaAAve,
		XAAve:         snap.XAAve,
		VAve:          snap.VAve,
		Uniformity:    snap.Uniformity,
		Effectiveness: snap.Effectiveness,
		TCPI:          snap.TCPI,
		QRespTotal:    snap.QRespTotal,
		QCvTotal:      snap.QCvTotal,
		QEvapTotal:    snap.QEvapTotal,
		QCoolActual:   snap.QCoolActual,
		MDehum:        snap.MDehum,
		ThetaCoil:     cu.get_theta_coil(),
		QCurrent:      cu.get_q_current(),
		Mode:          int(cu.get_mode()),
		MassResMax:    snap.MassResidualMax,
		EnergyResMax:  snap.EnergyResidualMax,
	})

	// ゾーン別状態は最新のものだけを保持する
	self.zone_rows = self.zone_rows[:0]
	for off, st := range c_n.zone_states {
		idx := zones.index(off)
		self.zone_rows = append(self.zone_rows, &ZoneStateRow{
			Zone:   idx.I,
			Layer:  idx.J,
			Pallet: idx.K,
			ThetaP: st.theta_p,
			WP:     st.w_p,
			ThetaA: st.theta_a,
			XA:     st.x_a,
			V:      st.v,
			P:      st.p,
			Rho:    st.rho,
			MDot:   st.m_dot,
			E:      st.e,
			FDev:   st.f_dev,
		})
	}
}

// 記録した行数を取得する。
func (self *Recorder) n_rows() int {
	return len(self.rows)
}

/*
計算結果をCSVファイルに保存する。

    Args:
        output_data_dir: 出力フォルダへのパス

    Notes:
        result_series.csv: 性能指標の時系列
        result_zones.csv: ゾーン別の最終状態
*/
func (self *Recorder) save(output_data_dir string) error {
	series_path := filepath.Join(output_data_dir, "result_series.csv")
	file, err := os.Create(series_path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&self.rows, file); err != nil {
		return err
	}

	zones_path := filepath.Join(output_data_dir, "result_zones.csv")
	zfile, err := os.Create(zones_path)
	if err != nil {
		return err
	}
	defer zfile.Close()

	return gocsv.MarshalFile(&self.zone_rows, zfile)
}
