package repository

import "github.com/d60-Lab/friendgraph/internal/model"

// seedCountries is the reference set inserted by CountryRepository.Seed.
var seedCountries = []model.Country{
	{Alpha2: "AF", Alpha3: "AFG", Name: "Afghanistan", Region: "Asia"},
	{Alpha2: "AL", Alpha3: "ALB", Name: "Albania", Region: "Europe"},
	{Alpha2: "AM", Alpha3: "ARM", Name: "Armenia", Region: "Asia"},
	{Alpha2: "AR", Alpha3: "ARG", Name: "Argentina", Region: "Americas"},
	{Alpha2: "AT", Alpha3: "AUT", Name: "Austria", Region: "Europe"},
	{Alpha2: "AU", Alpha3: "AUS", Name: "Australia", Region: "Oceania"},
	{Alpha2: "BE", Alpha3: "BEL", Name: "Belgium", Region: "Europe"},
	{Alpha2: "BG", Alpha3: "BGR", Name: "Bulgaria", Region: "Europe"},
	{Alpha2: "BR", Alpha3: "BRA", Name: "Brazil", Region: "Americas"},
	{Alpha2: "BY", Alpha3: "BLR", Name: "Belarus", Region: "Europe"},
	{Alpha2: "CA", Alpha3: "CAN", Name: "Canada", Region: "Americas"},
	{Alpha2: "CH", Alpha3: "CHE", Name: "Switzerland", Region: "Europe"},
	{Alpha2: "CL", Alpha3: "CHL", Name: "Chile", Region: "Americas"},
	{Alpha2: "CN", Alpha3: "CHN", Name: "China", Region: "Asia"},
	{Alpha2: "CO", Alpha3: "COL", Name: "Colombia", Region: "Americas"},
	{Alpha2: "CZ", Alpha3: "CZE", Name: "Czechia", Region: "Europe"},
	{Alpha2: "DE", Alpha3: "DEU", Name: "Germany", Region: "Europe"},
	{Alpha2: "DK", Alpha3: "DNK", Name: "Denmark", Region: "Europe"},
	{Alpha2: "DZ", Alpha3: "DZA", Name: "Algeria", Region: "Africa"},
	{Alpha2: "EE", Alpha3: "EST", Name: "Estonia", Region: "Europe"},
	{Alpha2: "EG", Alpha3: "EGY", Name: "Egypt", Region: "Africa"},
	{Alpha2: "ES", Alpha3: "ESP", Name: "Spain", Region: "Europe"},
	{Alpha2: "ET", Alpha3: "ETH", Name: "Ethiopia", Region: "Africa"},
	{Alpha2: "FI", Alpha3: "FIN", Name: "Finland", Region: "Europe"},
	{Alpha2: "FJ", Alpha3: "FJI", Name: "Fiji", Region: "Oceania"},
	{Alpha2: "FR", Alpha3: "FRA", Name: "France", Region: "Europe"},
	{Alpha2: "GB", Alpha3: "GBR", Name: "United Kingdom", Region: "Europe"},
	{Alpha2: "GE", Alpha3: "GEO", Name: "Georgia", Region: "Asia"},
	{Alpha2: "GH", Alpha3: "GHA", Name: "Ghana", Region: "Africa"},
	{Alpha2: "GR", Alpha3: "GRC", Name: "Greece", Region: "Europe"},
	{Alpha2: "ID", Alpha3: "IDN", Name: "Indonesia", Region: "Asia"},
	{Alpha2: "IE", Alpha3: "IRL", Name: "Ireland", Region: "Europe"},
	{Alpha2: "IL", Alpha3: "ISR", Name: "Israel", Region: "Asia"},
	{Alpha2: "IN", Alpha3: "IND", Name: "India", Region: "Asia"},
	{Alpha2: "IT", Alpha3: "ITA", Name: "Italy", Region: "Europe"},
	{Alpha2: "JP", Alpha3: "JPN", Name: "Japan", Region: "Asia"},
	{Alpha2: "KE", Alpha3: "KEN", Name: "Kenya", Region: "Africa"},
	{Alpha2: "KZ", Alpha3: "KAZ", Name: "Kazakhstan", Region: "Asia"},
	{Alpha2: "LT", Alpha3: "LTU", Name: "Lithuania", Region: "Europe"},
	{Alpha2: "LV", Alpha3: "LVA", Name: "Latvia", Region: "Europe"},
	{Alpha2: "MA", Alpha3: "MAR", Name: "Morocco", Region: "Africa"},
	{Alpha2: "MX", Alpha3: "MEX", Name: "Mexico", Region: "Americas"},
	{Alpha2: "NG", Alpha3: "NGA", Name: "Nigeria", Region: "Africa"},
	{Alpha2: "NL", Alpha3: "NLD", Name: "Netherlands", Region: "Europe"},
	{Alpha2: "NO", Alpha3: "NOR", Name: "Norway", Region: "Europe"},
	{Alpha2: "NZ", Alpha3: "NZL", Name: "New Zealand", Region: "Oceania"},
	{Alpha2: "PE", Alpha3: "PER", Name: "Peru", Region: "Americas"},
	{Alpha2: "PG", Alpha3: "PNG", Name: "Papua New Guinea", Region: "Oceania"},
	{Alpha2: "PL", Alpha3: "POL", Name: "Poland", Region: "Europe"},
	{Alpha2: "PT", Alpha3: "PRT", Name: "Portugal", Region: "Europe"},
	{Alpha2: "RO", Alpha3: "ROU", Name: "Romania", Region: "Europe"},
	{Alpha2: "RS", Alpha3: "SRB", Name: "Serbia", Region: "Europe"},
	{Alpha2: "RU", Alpha3: "RUS", Name: "Russian Federation", Region: "Europe"},
	{Alpha2: "SE", Alpha3: "SWE", Name: "Sweden", Region: "Europe"},
	{Alpha2: "TH", Alpha3: "THA", Name: "Thailand", Region: "Asia"},
	{Alpha2: "TR", Alpha3: "TUR", Name: "Turkey", Region: "Asia"},
	{Alpha2: "UA", Alpha3: "UKR", Name: "Ukraine", Region: "Europe"},
	{Alpha2: "US", Alpha3: "USA", Name: "United States", Region: "Americas"},
	{Alpha2: "UZ", Alpha3: "UZB", Name: "Uzbekistan", Region: "Asia"},
	{Alpha2: "VN", Alpha3: "VNM", Name: "Viet Nam", Region: "Asia"},
	{Alpha2: "WS", Alpha3: "WSM", Name: "Samoa", Region: "Oceania"},
	{Alpha2: "ZA", Alpha3: "ZAF", Name: "South Africa", Region: "Africa"},
}
