// This package converts MongoDB query filters into SQL boolean predicates.
//
// A filter such as
//
//	{"$and": [{"status": "active"}, {"age": {"$gte": 21}}]}
//
// becomes
//
//	((status = "active") AND (age >= 21))
//
// Values are rendered inline in their JSON form and field names are emitted
// verbatim. The result is not safe to build from untrusted input.
//
// See: https://www.mongodb.com/docs/compass/current/query/filter
package filter
