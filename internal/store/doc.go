// Package store owns the single SQLite connection used by the atlas engine.
//
// The store is the Connection Manager: it opens an existing database file,
// checks that the geographic schema is present and hands a handle to the
// repositories. It never creates tables behind the caller's back; Create is
// the only path that writes schema, and it is used by `atlas init` and tests.
//
// # Required Tables
//
//   - continent (continent_id, continent_code, name)
//   - country (country_id, country_code, name, continent_id, wikipedia_link, keywords)
//   - region (region_id, region_code, local_code, name, continent_id, country_id,
//     wikipedia_link, keywords)
//
// # Database Configuration
//
//   - foreign_keys=ON: country/region references are enforced
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - one open connection: pragmas apply to every statement
package store
