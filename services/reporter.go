package services

import (
	"fmt"
	"sort"
	"strings"

	"imoveis-sp/geocode"
	"imoveis-sp/models"
)

// PrintReport formats the filtered view's aggregates, neighborhood
// distribution and resolved coordinates for the terminal.
func PrintReport(stats models.StatsReport, counts map[string]int, coords map[string]*geocode.Coordinate) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🏠 IMÓVEIS SP — VIVAREAL\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Resumo\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Imóveis encontrados : \033[1m%d\033[0m\n", stats.Count)
	if stats.MeanArea != nil {
		fmt.Printf("  Área média (m²)     : \033[1m%d\033[0m\n", *stats.MeanArea)
	} else {
		fmt.Printf("  Área média (m²)     : —\n")
	}
	if stats.MeanPrice != nil {
		fmt.Printf("  Preço médio (R$)    : \033[1;32m%d\033[0m\n", *stats.MeanPrice)
	} else {
		fmt.Printf("  Preço médio (R$)    : —\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Imóveis por bairro\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(counts) == 0 {
		fmt.Printf("  Nenhum bairro identificado nas descrições\n")
	} else {
		type bairroCount struct {
			name  string
			count int
		}
		var bairros []bairroCount
		for name, cnt := range counts {
			bairros = append(bairros, bairroCount{name, cnt})
		}
		sort.Slice(bairros, func(i, j int) bool {
			if bairros[i].count != bairros[j].count {
				return bairros[i].count > bairros[j].count
			}
			return bairros[i].name < bairros[j].name
		})
		for _, bc := range bairros {
			bar := strings.Repeat("█", bc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(bc.name, 28), bar, bc.count)
		}
	}
	fmt.Println()

	if len(coords) > 0 {
		fmt.Printf("\033[1;33m  Coordenadas (aproximação por bairro)\033[0m\n")
		fmt.Printf("  %s\n", thin)
		var names []string
		for name := range coords {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c := coords[name]
			if c == nil {
				fmt.Printf("  %-30s não localizado\n", truncate(name, 28))
				continue
			}
			fmt.Printf("  %-30s %.4f, %.4f\n", truncate(name, 28), c.Lat, c.Lon)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
