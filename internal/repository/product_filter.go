package repository

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount filter values. Anything else leaves discount unconstrained.
const (
	DiscountOnly    = "true"
	DiscountExclude = "false"
)

// ProductFilter captures storefront listing parameters. Categories and Brands
// hold raw values; each may itself be a comma separated list.
type ProductFilter struct {
	Categories []string
	Brands     []string
	Discount   string
	Name       string
}

// BuildProductQuery translates the filter into a MongoDB query. Criteria are
// ANDed; an unset criterion adds nothing, so the zero filter matches all.
// The "no discount" criterion is an $or group of its own and never widens
// the other criteria.
func BuildProductQuery(f ProductFilter) bson.D {
	query := bson.D{}

	switch f.Discount {
	case DiscountOnly:
		query = append(query, bson.E{Key: "discount", Value: bson.D{{Key: "$gt", Value: 0}}})
	case DiscountExclude:
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "discount", Value: 0}},
			bson.D{{Key: "discount", Value: bson.D{{Key: "$exists", Value: false}}}},
		}})
	}

	if categories := SplitValues(f.Categories); len(categories) > 0 {
		query = append(query, bson.E{Key: "category", Value: bson.D{{Key: "$in", Value: categories}}})
	}

	if brands := SplitValues(f.Brands); len(brands) > 0 {
		query = append(query, bson.E{Key: "brand", Value: bson.D{{Key: "$in", Value: brands}}})
	}

	// A blank name adds nothing; otherwise the value is matched verbatim,
	// surrounding spaces included.
	if strings.TrimSpace(f.Name) != "" {
		query = append(query, bson.E{Key: "name", Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Name),
			Options: "i",
		}})
	}

	return query
}

// SplitValues flattens repeated and comma separated values, trimming blanks.
func SplitValues(raw []string) []string {
	var out []string
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
