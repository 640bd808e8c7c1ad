package toon

import "github.com/rvelazco/finparse/internal/domain/registry"

// categoryRules is the fixed classification table for note text. Order is
// significant: when several keywords occur in one note, the earliest table
// entry wins, so broad keywords sit below specific ones.
var categoryRules = []registry.KeywordRule{
	// Food and drink
	{Keyword: "super", Label: "Comida"},
	{Keyword: "almuerzo", Label: "Comida"},
	{Keyword: "cena", Label: "Comida"},
	{Keyword: "desayuno", Label: "Comida"},
	{Keyword: "merienda", Label: "Comida"},
	{Keyword: "comida", Label: "Comida"},
	{Keyword: "palito", Label: "Comida"},
	{Keyword: "empanada", Label: "Comida"},
	{Keyword: "hamburguesa", Label: "Comida"},
	{Keyword: "pizza", Label: "Comida"},
	{Keyword: "asado", Label: "Comida"},
	{Keyword: "helado", Label: "Comida"},
	{Keyword: "agua", Label: "Comida"},
	{Keyword: "coca", Label: "Comida"},
	{Keyword: "cerveza", Label: "Comida"},
	{Keyword: "pan", Label: "Comida"},
	// Transport
	{Keyword: "uber", Label: "Transporte"},
	{Keyword: "bolt", Label: "Transporte"},
	{Keyword: "taxi", Label: "Transporte"},
	{Keyword: "nafta", Label: "Transporte"},
	{Keyword: "combustible", Label: "Transporte"},
	{Keyword: "colectivo", Label: "Transporte"},
	{Keyword: "peaje", Label: "Transporte"},
	// Utilities
	{Keyword: "ande", Label: "Servicios"},
	{Keyword: "essap", Label: "Servicios"},
	{Keyword: "tigo", Label: "Servicios"},
	{Keyword: "personal", Label: "Servicios"},
	{Keyword: "claro", Label: "Servicios"},
	{Keyword: "internet", Label: "Servicios"},
	{Keyword: "wifi", Label: "Servicios"},
	// Health
	{Keyword: "farmacia", Label: "Salud"},
	{Keyword: "remedio", Label: "Salud"},
	{Keyword: "doctor", Label: "Salud"},
	{Keyword: "medico", Label: "Salud"},
	{Keyword: "consulta", Label: "Salud"},
	// Leisure
	{Keyword: "cine", Label: "Ocio"},
	{Keyword: "netflix", Label: "Ocio"},
	{Keyword: "spotify", Label: "Ocio"},
	// Shopping
	{Keyword: "ropa", Label: "Compras"},
	{Keyword: "regalo", Label: "Compras"},
	{Keyword: "shopping", Label: "Compras"},
}

var categoryEngine = registry.NewKeywordEngine(categoryRules)

// accountRules infer the originating account from note text. Same ordered
// first-match-wins contract as categoryRules.
var accountRules = []registry.KeywordRule{
	{Keyword: "tarjeta", Label: "Tarjeta"},
	{Keyword: "visa", Label: "Tarjeta"},
	{Keyword: "mastercard", Label: "Tarjeta"},
	{Keyword: "credito", Label: "Tarjeta"},
	{Keyword: "transferencia", Label: "Banco"},
	{Keyword: "debito", Label: "Banco"},
	{Keyword: "bbva", Label: "BBVA"},
	{Keyword: "itau", Label: "Itau"},
	{Keyword: "ueno", Label: "Ueno"},
	{Keyword: "efectivo", Label: "Efectivo"},
}

var accountEngine = registry.NewKeywordEngine(accountRules)
