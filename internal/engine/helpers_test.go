package engine

import "github.com/powerweather/precip-analyzer/internal/model"

func mam(measure, m string) model.MeasureAndModel {
	return model.MeasureAndModel{Measure: measure, Model: m}
}
