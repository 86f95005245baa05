package config

import "os"

const (
	holidayCountryEnv = "HOLIDAY_COUNTRY_CODE"
	timorAPIURLEnv    = "TIMOR_API_URL"
	nagerAPIURLEnv    = "NAGER_API_URL"

	defaultHolidayCountry = "CN"
	defaultTimorAPIURL    = "https://timor.tech"
	defaultNagerAPIURL    = "https://date.nager.at"
)

type HolidayConfig struct {
	CountryCode string
	TimorAPIURL string
	NagerAPIURL string
}

func LoadHolidayConfig() *HolidayConfig {
	countryCode := os.Getenv(holidayCountryEnv)
	if countryCode == "" {
		countryCode = defaultHolidayCountry
	}

	timorURL := os.Getenv(timorAPIURLEnv)
	if timorURL == "" {
		timorURL = defaultTimorAPIURL
	}

	nagerURL := os.Getenv(nagerAPIURLEnv)
	if nagerURL == "" {
		nagerURL = defaultNagerAPIURL
	}

	return &HolidayConfig{
		CountryCode: countryCode,
		TimorAPIURL: timorURL,
		NagerAPIURL: nagerURL,
	}
}
