package domain

import "time"

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

// threeDays é o cenário de referência: receita 100/200/300, pedidos 2/4/6, sessões 10/10/10
func threeDays() []SalesRecord {
	return []SalesRecord{
		{Date: day(time.January, 1), Revenue: 100, Orders: 2, Sessions: 10, NewCustomers: 1},
		{Date: day(time.January, 2), Revenue: 200, Orders: 4, Sessions: 10, NewCustomers: 2},
		{Date: day(time.January, 3), Revenue: 300, Orders: 6, Sessions: 10, NewCustomers: 3},
	}
}
