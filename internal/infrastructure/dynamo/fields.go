package dynamo

// DynamoDB attribute names shared by item builders, key builders and Bootstrap.
const (
	attrEmail   = "email"
	attrToken   = "token"
	attrExpires = "expires"
	attrTTL     = "ttl"

	attrID         = "id"
	emailIndex     = "email-index"
	fieldUpdatedAt = "updated_at"
)
