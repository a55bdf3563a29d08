package dynamo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-verification-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func TestUserRepo_Put_MarshalsUser(t *testing.T) {
	verified := time.Date(2000, 12, 30, 0, 12, 0, 0, time.UTC)
	api := &mockItemAPI{}
	api.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		_, imageIsNull := in.Item["image"].(*types.AttributeValueMemberNULL)
		return *in.TableName == "users" &&
			stringAttr(in.Item, attrID) == "a@b.com" &&
			stringAttr(in.Item, attrEmail) == "a@b.com" &&
			stringAttr(in.Item, "name") == "a" &&
			stringAttr(in.Item, "emailVerified") == "2000-12-30T00:12:00Z" &&
			imageIsNull
	})).Return(nil).Once()

	err := NewUserRepo(api).Put(context.Background(), "users", &domain.User{
		ID: "a@b.com", Email: strPtr("a@b.com"), Name: "a", EmailVerified: &verified,
	})

	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestUserRepo_Get_NotFound(t *testing.T) {
	api := &mockItemAPI{}
	api.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	_, err := NewUserRepo(api).Get(context.Background(), "users", "u1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_GetByEmail_UsesIndex(t *testing.T) {
	api := &mockItemAPI{}
	api.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return *in.IndexName == emailIndex && in.ExpressionAttributeNames["#a"] == attrEmail
	})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{{
		attrID:    s("u1"),
		attrEmail: s("a@b.com"),
		"name":    s("Alice"),
	}}}, nil)

	u, err := NewUserRepo(api).GetByEmail(context.Background(), "users", "a@b.com")

	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Alice", u.Name)
	require.NotNil(t, u.Email)
	assert.Equal(t, "a@b.com", *u.Email)
}

func TestUserRepo_GetByEmail_NoItems(t *testing.T) {
	api := &mockItemAPI{}
	api.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)

	_, err := NewUserRepo(api).GetByEmail(context.Background(), "users", "a@b.com")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepo_Update_MissingUser(t *testing.T) {
	api := &mockItemAPI{}
	api.On("UpdateItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.UpdateItemInput) bool {
		return in.ExpressionAttributeNames["#pk"] == attrID && *in.ConditionExpression == "attribute_exists(#pk)"
	})).Return(&types.ConditionalCheckFailedException{})

	err := NewUserRepo(api).Update(context.Background(), "users", "u1", map[string]interface{}{"name": "Bob"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
