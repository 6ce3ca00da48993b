package chat

import (
	"agrotech-backend/internal/models"
	"fmt"
	"strconv"
	"strings"
)

const personaPrompt = `Você é o AgroGPT, um assistente de inteligência artificial especializado em agricultura brasileira.
Você ajuda produtores rurais com:
- Análise de clima e previsões para plantio/colheita
- Cotações de commodities (soja, milho, café, algodão, etc.)
- Recomendações de manejo de culturas
- Gestão de maquinário agrícola
- Análise financeira de safras
- Melhores práticas agrícolas sustentáveis

Seja conciso, prático e use dados quando disponíveis. Sempre responda em português brasileiro.
Use emojis quando apropriado para tornar a conversa mais amigável.
Quando não souber algo com certeza, seja honesto sobre isso.`

// SystemPrompt is the persona prompt followed by a summary of whichever context fields are present.
func SystemPrompt(c *models.ChatContext) string {
	return personaPrompt + renderContext(c)
}

func renderContext(c *models.ChatContext) string {
	if c == nil {
		return ""
	}

	var b strings.Builder
	switch {
	case c.FarmName != "" && c.FarmLocation != "":
		fmt.Fprintf(&b, "\n- Fazenda: %s (%s)", c.FarmName, c.FarmLocation)
	case c.FarmName != "":
		fmt.Fprintf(&b, "\n- Fazenda: %s", c.FarmName)
	case c.FarmLocation != "":
		fmt.Fprintf(&b, "\n- Localização: %s", c.FarmLocation)
	}
	if len(c.ActiveCrops) > 0 {
		fmt.Fprintf(&b, "\n- Culturas ativas: %s", strings.Join(c.ActiveCrops, ", "))
	}
	if w := c.Weather; w != nil {
		fmt.Fprintf(&b, "\n- Clima: %s°C, %s, %s%% umidade", formatNumber(w.Temp), w.Condition, formatNumber(w.Humidity))
	}
	if len(c.MarketPrices) > 0 {
		quotes := make([]string, 0, len(c.MarketPrices))
		for _, p := range c.MarketPrices {
			sign := ""
			if p.Variation > 0 {
				sign = "+"
			}
			quotes = append(quotes, fmt.Sprintf("%s: R$%s (%s%s%%)", p.Commodity, formatNumber(p.Price), sign, formatNumber(p.Variation)))
		}
		b.WriteString("\n- Cotações: " + strings.Join(quotes, ", "))
	}

	if b.Len() == 0 {
		return ""
	}
	return "\n\nContexto atual:" + b.String()
}

// formatNumber prints the shortest representation, so 28 stays "28" and 5.2 stays "5.2".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// PlantingPrompt asks for a planting window given a daily forecast.
func PlantingPrompt(crop string, forecast []models.ForecastDay) string {
	lines := make([]string, 0, len(forecast))
	for _, f := range forecast {
		lines = append(lines, fmt.Sprintf("%s: %d°C, %d%% umidade, %d%% chance de chuva", f.Date, f.Temp, f.Humidity, f.RainProbability))
	}
	return fmt.Sprintf("Analise as condições climáticas dos próximos dias para plantio de %s:\n%s\n\nForneça uma recomendação curta sobre a janela ideal de plantio.",
		crop, strings.Join(lines, "\n"))
}

// MarketTrendPrompt asks for a short trend reading of a price history.
func MarketTrendPrompt(commodity string, history []models.PricePoint) string {
	var first, last float64
	if len(history) > 0 {
		first = history[0].Price
		last = history[len(history)-1].Price
	}
	base := first
	if base == 0 {
		base = 1
	}
	change := (last - first) / base * 100
	return fmt.Sprintf("Analise a tendência de preços de %s nos últimos %d dias:\nPreço inicial: R$ %s\nPreço atual: R$ %s\nVariação: %.2f%%\n\nForneça uma análise curta da tendência e recomendação.",
		commodity, len(history), formatNumber(first), formatNumber(last), change)
}
