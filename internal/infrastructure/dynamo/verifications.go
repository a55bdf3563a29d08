package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-verification-nosql/internal/domain"
)

// VerificationRequestRepo stores hashed verification tokens.
// PK: email. The table name is passed per call so the caller owns the
// "is this configured" decision.
type VerificationRequestRepo struct {
	client ItemAPI
}

func NewVerificationRequestRepo(client ItemAPI) *VerificationRequestRepo {
	return &VerificationRequestRepo{client: client}
}

// Put writes r, replacing any existing request for the same email.
func (r *VerificationRequestRepo) Put(ctx context.Context, table string, v *domain.VerificationRequest) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      verificationItem(v),
	})
	return err
}

// Get reads the request for email. Missing attributes come back as empty
// strings; a missing item is domain.ErrNotFound.
func (r *VerificationRequestRepo) Get(ctx context.Context, table, email string) (*domain.VerificationRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            strKey(attrEmail, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("verification request not found: %w", domain.ErrNotFound)
	}
	return &domain.VerificationRequest{
		Identifier:  email,
		HashedToken: stringAttr(out.Item, attrToken),
		Expires:     stringAttr(out.Item, attrExpires),
	}, nil
}

// Delete removes the request for email. Deleting a missing key succeeds.
func (r *VerificationRequestRepo) Delete(ctx context.Context, table, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       strKey(attrEmail, email),
	})
	return err
}

// verificationItem encodes v. The numeric ttl attribute lets DynamoDB reap
// stale items; reads never consult it.
func verificationItem(v *domain.VerificationRequest) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		attrEmail:   &types.AttributeValueMemberS{Value: v.Identifier},
		attrToken:   &types.AttributeValueMemberS{Value: v.HashedToken},
		attrExpires: &types.AttributeValueMemberS{Value: v.Expires},
	}
	if exp, err := time.Parse(time.RFC3339, v.Expires); err == nil {
		item[attrTTL] = &types.AttributeValueMemberN{Value: strconv.FormatInt(exp.Unix(), 10)}
	}
	return item
}
