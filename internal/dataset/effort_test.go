package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffortHours(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		factor float64
		want   float64
	}{
		{name: "unit value keeps base", value: 1, factor: 1, want: 1.0},
		{name: "three decades", value: 1000, factor: 1, want: 2.5},
		{name: "factor scales", value: 1000, factor: 1.2, want: 3.0},
		{name: "sub-unit value keeps base", value: 0.5, factor: 1, want: 1.0},
		{name: "floor applies", value: 1, factor: 0.1, want: 0.25},
		{name: "zero value floors at base", value: 0, factor: 1, want: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EffortHours(tt.value, tt.factor), 1e-9)
		})
	}
}

func TestMapTributeType(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{desc: "ICMS - OPERACOES PROPRIAS", want: "ICMS"},
		{desc: "MULTA ICMS", want: "ICMS"},
		{desc: "ISS - SERVICOS", want: "ISS"},
		{desc: "IMPOSTO SOBRE SERVIÇOS DE QUALQUER NATUREZA", want: "ISS"},
		{desc: "IPVA 2019", want: "IPVA"},
		{desc: "IMPOSTO SOBRE VEÍCULOS AUTOMOTORES", want: "IPVA"},
		{desc: "IPTU PREDIAL", want: "IPTU"},
		{desc: "IMPOSTO TERRITORIAL URBANO", want: "IPTU"},
		{desc: "ITCD CAUSA MORTIS", want: "ITCD"},
		{desc: "ITCMD DOACAO", want: "ITCD"},
		{desc: "ITBI INTER VIVOS", want: "ITBI"},
		{desc: "TRANSMISSÃO DE BENS IMÓVEIS", want: "ITBI"},
		{desc: "TAXA JUDICIARIA", want: "OUTROS"},
		{desc: "", want: "OUTROS"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapTributeType(tt.desc), "desc %q", tt.desc)
	}
}
