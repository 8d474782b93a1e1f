package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brfialho/pesquisa/internal/app"
	"github.com/brfialho/pesquisa/internal/common"
	"github.com/brfialho/pesquisa/internal/models"
	"github.com/brfialho/pesquisa/internal/services/research"
)

const ruleWidth = 80

var (
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleSection = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	stylePrompt  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	styleBanner = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 2).
			Align(lipgloss.Center)
)

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configFlag := flag.String("config", "", "path to pesquisa.toml")
	flag.Parse()

	if *versionFlag {
		fmt.Println("pesquisa " + common.GetFullVersion())
		return
	}

	stdin := bufio.NewReader(os.Stdin)

	name := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(name) == "" {
		fmt.Println(styleBanner.Render("SISTEMA DE PESQUISA AUTOMATIZADA DE EMPRESAS\nGoogle Gemini + Google News + Yahoo Finance"))
		fmt.Println()
		name = promptLine(stdin, "Digite o nome da empresa: ")
	}

	query, err := models.NewCompanyQuery(name)
	if err != nil {
		fmt.Println(styleErr.Render("✗ Nome da empresa não pode estar vazio"))
		os.Exit(1)
	}

	ctx := context.Background()

	a, err := app.NewApp(ctx, *configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, styleErr.Render(fmt.Sprintf("✗ Falha na inicialização: %v", err)))
		os.Exit(1)
	}
	defer a.Close()

	svc := a.BuildResearchService(consoleHooks())

	printHeader(fmt.Sprintf("PESQUISA AUTOMATIZADA: %s", strings.ToUpper(query.String())))

	result := svc.Run(ctx, query)

	fmt.Println()
	fmt.Println(styleHeader.Render(strings.Repeat("=", ruleWidth)))

	answer := promptLine(stdin, "Deseja salvar este relatório? (s/n): ")
	if isYes(answer) {
		path, err := a.ReportService.Save(result)
		if err != nil {
			fmt.Println(styleErr.Render(fmt.Sprintf("✗ Não foi possível salvar o relatório: %v", err)))
		} else {
			fmt.Println(styleOK.Render("✓ Relatório salvo em: " + path))
		}
	} else {
		fmt.Println(styleWarn.Render("Relatório não salvo."))
	}

	fmt.Println(styleHeader.Render(strings.Repeat("=", ruleWidth)))
}

// consoleHooks renders each pipeline stage result as it lands, in the
// same A/B/C order the persisted report uses.
func consoleHooks() research.Hooks {
	return research.Hooks{
		OnSummary: func(s models.CompanySummary) {
			printSection("📋 A. RESUMO/DESCRIÇÃO DA EMPRESA")
			if s.Succeeded {
				fmt.Println(s.Text)
			} else {
				fmt.Println(styleErr.Render("Erro: " + s.Text))
			}
		},
		OnNews: func(items []models.NewsItem) {
			printSection("📰 B. ÚLTIMAS NOTÍCIAS RELEVANTES")
			if len(items) == 0 {
				fmt.Println(styleWarn.Render("⚠ Não foi possível buscar notícias"))
				return
			}
			fmt.Println(styleOK.Render(fmt.Sprintf("✓ %d notícias encontradas:", len(items))))
			fmt.Println()
			for i, item := range items {
				fmt.Printf("[%d] %s\n", i+1, item.Title)
				fmt.Printf("    Data: %s\n", item.PublishedAt)
				if item.Link != "" {
					fmt.Printf("    Link: %s\n", item.Link)
				}
				fmt.Println()
			}
		},
		OnTicker: func(t models.TickerSymbol) {
			printSection("💰 C. VALOR DA AÇÃO (COTAÇÃO ATUAL)")
			if t.IsEmpty() {
				fmt.Println(styleWarn.Render("⚠ Ticker não encontrado automaticamente"))
				return
			}
			fmt.Println(styleOK.Render("✓ Ticker encontrado: " + t.Value))
		},
		OnQuote: func(q models.Quote) {
			if q.Symbol == "" {
				return
			}
			if q.HasPrice() {
				fmt.Printf("Ticker:       %s\n", q.Symbol)
				fmt.Printf("Preço Atual:  %s %.2f\n", q.Currency, q.Price)
			} else {
				fmt.Println(styleWarn.Render("⚠ Não foi possível obter cotação para " + q.Symbol))
			}
		},
	}
}

func printHeader(text string) {
	rule := strings.Repeat("=", ruleWidth)
	centered := lipgloss.NewStyle().Width(ruleWidth).Align(lipgloss.Center).Render(text)
	fmt.Println()
	fmt.Println(styleHeader.Render(rule))
	fmt.Println(styleHeader.Render(centered))
	fmt.Println(styleHeader.Render(rule))
}

func printSection(title string) {
	fmt.Println()
	fmt.Println(styleSection.Render("▶ " + title))
	fmt.Println(styleSection.Render(strings.Repeat("-", ruleWidth)))
}

func promptLine(r *bufio.Reader, prompt string) string {
	fmt.Print(stylePrompt.Render(prompt))
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func isYes(answer string) bool {
	switch strings.ToLower(answer) {
	case "s", "sim", "y", "yes":
		return true
	}
	return false
}
