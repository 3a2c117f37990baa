package entity

import "time"

// ProcessParameterReading lectura de un parámetro de proceso registrada durante
// la fabricación. EnRango es derivado: se recalcula contra la configuración de
// rangos en cada escritura, nunca se almacena de forma independiente.
type ProcessParameterReading struct {
	ID                string
	LoteFabricacionID string
	EtapaProduccion   string
	Parametro         string
	Valor             float64
	UnidadMedida      string
	EnRango           bool
	FechaMedicion     time.Time
	Notas             string
	CreatedAt         time.Time
}
