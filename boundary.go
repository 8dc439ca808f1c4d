package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/gocarina/gocsv"
)

/*
境界条件

    シミュレーションを駆動するディリクレ型の境界条件。
    コントローラ等の外部コンポーネントによりステップ間で書き換えられることを想定し、
    計算コアからは読み取り専用として扱う。
*/
type BoundaryConfig struct {
	ThetaWall  float64 `json:"theta_wall"`                    // 壁面・目標温度, degree C
	ThetaInlet float64 `json:"theta_inlet"`                   // 給気温度, degree C
	XInlet     float64 `json:"x_inlet" validate:"gte=0"`      // 給気絶対湿度, kg/kgDA
	PInlet     float64 `json:"p_inlet" validate:"gt=0"`       // 給気圧力, Pa
	POutlet    float64 `json:"p_outlet" validate:"gt=0"`      // 排気圧力, Pa
}

// 境界条件を検証する。
func (self *BoundaryConfig) validate(gmt *GeometryConfig) error {
	if err := validator.New().Struct(self); err != nil {
		return fmt.Errorf("境界条件が不正である: %w", err)
	}

	if self.PInlet <= self.POutlet {
		return fmt.Errorf("給気圧力 %f Pa が排気圧力 %f Pa 以下であり流れが駆動されない", self.PInlet, self.POutlet)
	}

	for _, theta := range []float64{self.ThetaWall, self.ThetaInlet} {
		if theta < gmt.ThetaMin || theta > gmt.ThetaMax {
			return fmt.Errorf(
				"境界温度 %f degree C が物理的妥当性の範囲 [%f, %f] degree C の外にある",
				theta, gmt.ThetaMin, gmt.ThetaMax)
		}
	}

	return nil
}

// 外気温度スケジュールの1行分
type AmbientScheduleRow struct {
	TimeS      float64 `csv:"time_s"`      // 経過時間, s
	ThetaInlet float64 `csv:"theta_inlet"` // 給気温度, degree C
}

// 外気温度スケジュール
type AmbientSchedule struct {
	rows []*AmbientScheduleRow
}

/*
外気温度スケジュールをCSVファイルから読み込む。

    Args:
        file_path: スケジュールCSVファイルのパス

    Returns:
        外気温度スケジュール

    Notes:
        time_s の昇順に並べ替えて保持する。
*/
func load_ambient_schedule(file_path string) (*AmbientSchedule, error) {
	file, err := os.Open(file_path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var rows []*AmbientScheduleRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("スケジュールファイル `%s` に行が存在しない", file_path)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].TimeS < rows[j].TimeS
	})

	return &AmbientSchedule{rows: rows}, nil
}

/*
指定時刻の給気温度を線形補間により取得する。

    Args:
        t: 経過時間, s

    Returns:
        給気温度, degree C
*/
func (self *AmbientSchedule) get_theta_inlet(t float64) float64 {
	rows := self.rows

	if t <= rows[0].TimeS {
		return rows[0].ThetaInlet
	}
	if t >= rows[len(rows)-1].TimeS {
		return rows[len(rows)-1].ThetaInlet
	}

	i := sort.Search(len(rows), func(i int) bool {
		return rows[i].TimeS >= t
	})

	r0, r1 := rows[i-1], rows[i]
	alpha := (t - r0.TimeS) / (r1.TimeS - r0.TimeS)

	return r0.ThetaInlet*(1.0-alpha) + r1.ThetaInlet*alpha
}
