package utils

import "math"

// RoundWithTwoDecimalPlace arredonda valores monetários para centavos
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// RandomBetween sorteia um inteiro em [min, max] usando a função de sorteio informada
func RandomBetween(intn func(int) int, min, max int) int {
	if max <= min {
		return min
	}

	return min + intn(max-min+1)
}
