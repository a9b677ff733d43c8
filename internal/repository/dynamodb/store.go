// Package dynamodb implements domain.Store on Amazon DynamoDB, one table per collection keyed by "id".
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"eventcrm/internal/domain"
)

const tableWaitTimeout = 2 * time.Minute

// Config holds connection settings. Endpoint points at DynamoDB Local when set.
type Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	TablePrefix     string
}

// API is the subset of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewClient builds a DynamoDB client with static credentials. A local endpoint without
// credentials gets dummy ones, which DynamoDB Local accepts.
func NewClient(cfg Config) *dynamodb.Client {
	accessKey, secretKey := cfg.AccessKeyID, cfg.SecretAccessKey
	if cfg.Endpoint != "" && accessKey == "" {
		accessKey, secretKey = "dummy", "dummy"
	}
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
}

// Store implements domain.Store on DynamoDB.
type Store struct {
	client API
	prefix string
}

// NewStore returns a Store using the given client; table names are prefix + collection.
func NewStore(client API, tablePrefix string) *Store {
	return &Store{client: client, prefix: tablePrefix}
}

func (s *Store) table(collection string) *string {
	return aws.String(s.prefix + collection)
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

func (s *Store) Get(ctx context.Context, collection, id string) (domain.Document, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      s.table(collection),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, classify("get item", err)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrNotFound
	}
	return unmarshal(out.Item)
}

func (s *Store) Put(ctx context.Context, collection string, doc domain.Document) error {
	if doc.ID() == "" {
		return fmt.Errorf("put %s: document has no id", collection)
	}
	item, err := attributevalue.MarshalMap(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: s.table(collection),
		Item:      item,
	}); err != nil {
		return classify("put item", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                s.table(collection),
		Key:                      key(id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return classify("delete item", err)
	}
	return nil
}

// Scan follows LastEvaluatedKey until the table is exhausted. DynamoDB returns a
// fixed collection in a stable order, which is the order used here.
func (s *Store) Scan(ctx context.Context, collection string) ([]domain.Document, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:      s.table(collection),
		ConsistentRead: aws.Bool(true),
	})
	docs := []domain.Document{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify("scan", err)
		}
		for _, item := range page.Items {
			doc, err := unmarshal(item)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// AppendToList uses list_append(if_not_exists(...)) so creation and append happen in one UpdateItem call.
func (s *Store) AppendToList(ctx context.Context, collection, id, field string, values ...string) error {
	vals := make([]types.AttributeValue, 0, len(values))
	for _, v := range values {
		vals = append(vals, &types.AttributeValueMemberS{Value: v})
	}
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           s.table(collection),
		Key:                 key(id),
		UpdateExpression:    aws.String("SET #f = list_append(if_not_exists(#f, :empty), :vals)"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#f":  field,
			"#id": "id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":vals":  &types.AttributeValueMemberL{Value: vals},
		},
	})
	if err != nil {
		return classify("append to list", err)
	}
	return nil
}

func (s *Store) UpdateFields(ctx context.Context, collection, id string, fields domain.Document) error {
	names := make([]string, 0, len(fields))
	for k := range fields {
		if k != "id" {
			names = append(names, k)
		}
	}
	if len(names) == 0 {
		_, err := s.Get(ctx, collection, id)
		return err
	}
	slices.Sort(names)

	exprNames := map[string]string{"#id": "id"}
	exprValues := make(map[string]types.AttributeValue, len(names))
	expr := "SET "
	for i, name := range names {
		av, err := attributevalue.Marshal(fields[name])
		if err != nil {
			return fmt.Errorf("marshal field %s: %w", name, err)
		}
		n, v := fmt.Sprintf("#f%d", i), fmt.Sprintf(":v%d", i)
		exprNames[n] = name
		exprValues[v] = av
		if i > 0 {
			expr += ", "
		}
		expr += n + " = " + v
	}
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 s.table(collection),
		Key:                       key(id),
		UpdateExpression:          aws.String(expr),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
	})
	if err != nil {
		return classify("update fields", err)
	}
	return nil
}

// EnsureCollections creates a table per collection (hash key "id") unless it already exists,
// then waits for new tables to become active.
func (s *Store) EnsureCollections(ctx context.Context, collections ...string) error {
	for _, c := range collections {
		_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: s.table(c)})
		if err == nil {
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return classify("describe table", err)
		}
		if _, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
			TableName: s.table(c),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			BillingMode: types.BillingModePayPerRequest,
		}); err != nil {
			return classify("create table", err)
		}
		waiter := dynamodb.NewTableExistsWaiter(s.client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: s.table(c)}, tableWaitTimeout); err != nil {
			return fmt.Errorf("wait for table %s: %w", aws.ToString(s.table(c)), err)
		}
	}
	return nil
}

func unmarshal(item map[string]types.AttributeValue) (domain.Document, error) {
	var doc map[string]any
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return domain.Document(doc), nil
}

// classify maps SDK errors onto the domain taxonomy.
func classify(op string, err error) error {
	var condFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return domain.ErrNotFound
	}
	var missingTable *types.ResourceNotFoundException
	var sendErr *smithyhttp.RequestSendError
	var netErr net.Error
	if errors.As(err, &missingTable) || errors.As(err, &sendErr) || errors.As(err, &netErr) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
