package chat

import "strings"

type cannedRule struct {
	keywords []string
	reply    string
}

// cannedRules are checked in order; the first rule with a keyword in the message wins.
var cannedRules = []cannedRule{
	{
		keywords: []string{"clima", "tempo", "chuva"},
		reply: `🌤️ **Análise Climática**

Com base nos dados da sua região, identifiquei:
- Temperatura: 28-32°C nos próximos dias
- Probabilidade de chuva: 45% para amanhã
- Umidade relativa: adequada para a maioria das culturas

**Recomendação:** Janela favorável para aplicação de defensivos nas próximas 48h, antes da previsão de precipitação.`,
	},
	{
		keywords: []string{"soja", "milho", "preço", "cotação"},
		reply: `📊 **Análise de Mercado**

Cotações atuais:
- **Soja:** R$ 142,00/sc (+5.2%)
- **Milho:** R$ 58,50/sc (-1.2%)

**Tendência:** Mercado de soja em alta devido à demanda chinesa. Milho pressionado pela safra americana.

**Sugestão:** Considere travar parte da produção de soja nos níveis atuais.`,
	},
	{
		keywords: []string{"plantio", "plantar"},
		reply: `🌱 **Recomendação de Plantio**

Analisando dados do mercado e clima:

📌 **Recomendação: PLANTAR**
- Janela ideal: 18 a 25 de Outubro
- Previsão de La Niña fraca favorece
- Lucro estimado: +R$ 4.200/ha

⚠️ **Atenção:** Verifique a umidade do solo antes do plantio.`,
	},
	{
		keywords: []string{"máquina", "trator", "colheitadeira"},
		reply: `🚜 **Status do Maquinário**

Baseado nos dados registrados:
- John Deere 7230J: Operacional (78% combustível)
- New Holland CR 9.90: Disponível
- Jacto Uniport 3030: **Em manutenção**

**Alerta:** O pulverizador precisa de revisão das barras antes da próxima aplicação.`,
	},
}

const defaultCannedReply = `🤖 Olá! Sou o AgroGPT, seu assistente agrícola inteligente.

Posso ajudar com:
- 🌤️ Análise de clima e previsões
- 📊 Cotações de commodities
- 🌱 Recomendações de plantio
- 🚜 Gestão de maquinário
- 💰 Análise financeira

O que você gostaria de saber?`

// CannedReply picks a fixed answer by keyword. It is deterministic and never empty.
func CannedReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range cannedRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.reply
			}
		}
	}
	return defaultCannedReply
}
