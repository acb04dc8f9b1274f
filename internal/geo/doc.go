// Package geo defines the geographic entities handled by the atlas engine
// and the format rules their codes must satisfy.
//
// Entities are plain value records. A record read from the store is never
// mutated in place; an edit produces a new record that replaces the old one
// wholesale.
//
// # Natural Keys
//
// Every entity has a store-assigned numeric ID and a human-meaningful code:
//
//	Continent  continent_code  "NA"
//	Country    country_code    "US"
//	Region     region_code     "US-CA" (local_code "CA")
//
// Codes are validated by the functions in validate.go before any write.
package geo
