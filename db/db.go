package db

import (
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/mthd/constants"
	"github.com/jsphweid/mthd/model"
	"github.com/jsphweid/mthd/util"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

const maxBatchGet = 100

// unprocessed writes and keys are resubmitted this many times before giving up
const maxAttempts = 5

type Catalog struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewCatalog(client dynamodbiface.DynamoDBAPI, table string) *Catalog {
	return &Catalog{client: client, table: table}
}

// NewCatalogFromEnv connects to the endpoint and table named by the
// DYNAMODB_ENDPOINT, DYNAMODB_REGION and HEADER_TABLE variables.
func NewCatalogFromEnv() (*Catalog, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create a new DynamoDB session")
	}
	return NewCatalog(dynamodb.New(sess), constants.GetHeaderTable()), nil
}

func number[A constraints.Unsigned](v A) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatUint(uint64(v), 10))}
}

func float(v float64) *dynamodb.AttributeValue {
	return &dynamodb.AttributeValue{N: aws.String(strconv.FormatFloat(v, 'f', -1, 64))}
}

func ItemFromSummary(s model.HeaderSummary) map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":             {S: aws.String(s.Path)},
		"Format":         number(s.Format),
		"TrackCount":     number(s.TrackCount),
		"DivisionKind":   {S: aws.String(s.DivisionKind)},
		"TickResolution": float(s.TickResolution),
	}
	if s.DivisionKind == "frames_per_second" {
		item["FrameRate"] = float(s.FrameRate)
		item["TicksPerFrame"] = number(s.TicksPerFrame)
	} else {
		item["TicksPerBeat"] = number(s.TicksPerBeat)
	}
	return item
}

func parseUint(v *dynamodb.AttributeValue, bits int) uint64 {
	if v == nil || v.N == nil {
		return 0
	}
	n, _ := strconv.ParseUint(*v.N, 10, bits)
	return n
}

func parseFloat(v *dynamodb.AttributeValue) float64 {
	if v == nil || v.N == nil {
		return 0
	}
	n, _ := strconv.ParseFloat(*v.N, 64)
	return n
}

func SummaryFromItem(item map[string]*dynamodb.AttributeValue) model.HeaderSummary {
	var s model.HeaderSummary
	if v := item["PK"]; v != nil && v.S != nil {
		s.Path = *v.S
	}
	if v := item["DivisionKind"]; v != nil && v.S != nil {
		s.DivisionKind = *v.S
	}
	s.Format = uint16(parseUint(item["Format"], 16))
	s.TrackCount = uint16(parseUint(item["TrackCount"], 16))
	s.TicksPerBeat = uint16(parseUint(item["TicksPerBeat"], 16))
	s.TicksPerFrame = uint8(parseUint(item["TicksPerFrame"], 8))
	s.FrameRate = parseFloat(item["FrameRate"])
	s.TickResolution = parseFloat(item["TickResolution"])
	return s
}

func (c *Catalog) PutHeaderSummaries(summaries []model.HeaderSummary) error {
	for _, batch := range util.Batch(summaries, constants.MaxBatchWrite) {
		var requests []*dynamodb.WriteRequest
		for _, s := range batch {
			requests = append(requests, &dynamodb.WriteRequest{
				PutRequest: &dynamodb.PutRequest{Item: ItemFromSummary(s)},
			})
		}
		pending := map[string][]*dynamodb.WriteRequest{c.table: requests}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxAttempts {
				return errors.Errorf("%d header summaries left unprocessed", len(pending[c.table]))
			}
			out, err := c.client.BatchWriteItem(&dynamodb.BatchWriteItemInput{RequestItems: pending})
			if err != nil {
				return errors.Wrap(err, "error from DynamoDB")
			}
			pending = out.UnprocessedItems
		}
	}
	return nil
}

func (c *Catalog) GetHeaderSummaries(paths []string) (map[string]model.HeaderSummary, error) {
	res := make(map[string]model.HeaderSummary)
	for _, batch := range util.Batch(paths, maxBatchGet) {
		var keys []map[string]*dynamodb.AttributeValue
		for _, path := range batch {
			keys = append(keys, map[string]*dynamodb.AttributeValue{
				"PK": {S: aws.String(path)},
			})
		}
		pending := map[string]*dynamodb.KeysAndAttributes{c.table: {Keys: keys}}
		for attempt := 0; len(pending) > 0; attempt++ {
			if attempt == maxAttempts {
				return nil, errors.Errorf("%d header summaries left unread", len(pending[c.table].Keys))
			}
			out, err := c.client.BatchGetItem(&dynamodb.BatchGetItemInput{RequestItems: pending})
			if err != nil {
				return nil, errors.Wrap(err, "error from DynamoDB")
			}
			for _, item := range out.Responses[c.table] {
				s := SummaryFromItem(item)
				res[s.Path] = s
			}
			pending = out.UnprocessedKeys
		}
	}
	return res, nil
}
