package dto

import "github.com/aarondl/null/v8"

func putString(p map[string]interface{}, key string, v null.String) {
	if v.Valid {
		p[key] = v.String
	}
}

func putInt(p map[string]interface{}, key string, v null.Int64) {
	if v.Valid {
		p[key] = v.Int64
	}
}

func putFloat(p map[string]interface{}, key string, v null.Float64) {
	if v.Valid {
		p[key] = v.Float64
	}
}

func putBool(p map[string]interface{}, key string, v null.Bool) {
	if v.Valid {
		p[key] = v.Bool
	}
}
