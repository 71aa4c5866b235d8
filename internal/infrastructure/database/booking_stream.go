package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"marketplace_billing/internal/domain/entities"
	"marketplace_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams"
	"github.com/aws/aws-sdk-go-v2/service/dynamodbstreams/types"
)

const (
	defaultStreamPollInterval   = 2 * time.Second
	defaultShardRefreshInterval = time.Minute
)

var ErrStreamNotEnabled = errors.New("bookings table has no stream enabled")

// StreamsAPI is the subset of the DynamoDB Streams client used by the listener.
type StreamsAPI interface {
	DescribeStream(ctx context.Context, in *dynamodbstreams.DescribeStreamInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.DescribeStreamOutput, error)
	GetShardIterator(ctx context.Context, in *dynamodbstreams.GetShardIteratorInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.GetShardIteratorOutput, error)
	GetRecords(ctx context.Context, in *dynamodbstreams.GetRecordsInput, optFns ...func(*dynamodbstreams.Options)) (*dynamodbstreams.GetRecordsOutput, error)
}

// BookingDecoder turns a bookings table item into a Booking.
type BookingDecoder func(item map[string]ddbtypes.AttributeValue) (entities.Booking, error)

// BookingStreamListener polls the bookings table stream and hands each
// change to a subscriber, one record at a time and in shard order.
//
// Shards open when Subscribe starts are read from LATEST. Shards discovered
// later (children of split or rotated shards) are read from TRIM_HORIZON once
// their parent has been drained.
type BookingStreamListener struct {
	streams         StreamsAPI
	streamARN       string
	decode          BookingDecoder
	interval        time.Duration
	refreshInterval time.Duration
}

// shardCursor is the read position in one shard. A nil iterator means the
// shard must be reopened before the next poll.
type shardCursor struct {
	iterator *string
	lastSeq  string
	latest   bool
}

var _ interfaces.IBookingEventSource = (*BookingStreamListener)(nil)

func NewBookingStreamListener(streams StreamsAPI, streamARN string, decode BookingDecoder, interval time.Duration) *BookingStreamListener {
	if interval <= 0 {
		interval = defaultStreamPollInterval
	}
	return &BookingStreamListener{
		streams:         streams,
		streamARN:       streamARN,
		decode:          decode,
		interval:        interval,
		refreshInterval: defaultShardRefreshInterval,
	}
}

// ConnectDynamoDBStreams creates a DynamoDB Streams client from the same
// environment as ConnectDynamoDB.
func ConnectDynamoDBStreams(ctx context.Context) (*dynamodbstreams.Client, error) {
	cfg, err := NewDynamoDBConfigFromEnv(ctx)
	if err != nil {
		return nil, err
	}
	return dynamodbstreams.NewFromConfig(cfg, func(o *dynamodbstreams.Options) {
		if endpoint := os.Getenv("DYNAMODB_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// ResolveStreamARN returns BOOKINGS_STREAM_ARN when set, otherwise the
// table's latest stream.
func ResolveStreamARN(ctx context.Context, ddb *dynamodb.Client, table string) (string, error) {
	if arn := os.Getenv("BOOKINGS_STREAM_ARN"); arn != "" {
		return arn, nil
	}
	out, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)})
	if err != nil {
		return "", err
	}
	if out.Table == nil || aws.ToString(out.Table.LatestStreamArn) == "" {
		return "", fmt.Errorf("%w: %s", ErrStreamNotEnabled, table)
	}
	return aws.ToString(out.Table.LatestStreamArn), nil
}

// Subscribe blocks until ctx is done. Handler errors are logged and the
// record is not redelivered.
func (l *BookingStreamListener) Subscribe(ctx context.Context, handler interfaces.BookingChangeHandler) error {
	log.Printf("[bookings][stream] subscribe stream_arn=%s interval=%s", l.streamARN, l.interval)

	known := map[string]bool{}
	cursors := map[string]*shardCursor{}
	initial, refresh := true, true
	var lastRefresh time.Time

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if refresh || time.Since(lastRefresh) >= l.refreshInterval {
			if err := l.discoverShards(ctx, known, cursors, initial); err != nil {
				log.Printf("[bookings][stream] describe stream failed stream_arn=%s err=%v", l.streamARN, err)
			} else {
				initial, refresh = false, false
				lastRefresh = time.Now()
			}
		}

		for shardID, cur := range cursors {
			if cur.iterator == nil {
				if err := l.reopen(ctx, shardID, cur); err != nil {
					log.Printf("[bookings][stream] reopen shard failed shard_id=%s err=%v", shardID, err)
					continue
				}
			}

			next, err := l.poll(ctx, cur, handler)
			if err != nil {
				log.Printf("[bookings][stream] get records failed shard_id=%s last_seq=%s err=%v", shardID, cur.lastSeq, err)
				cur.iterator = nil
				refresh = true
				continue
			}
			if next == nil {
				log.Printf("[bookings][stream] shard closed shard_id=%s", shardID)
				delete(cursors, shardID)
				refresh = true
				continue
			}
			cur.iterator = next
		}

		select {
		case <-ctx.Done():
			log.Printf("[bookings][stream] stopped stream_arn=%s", l.streamARN)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// discoverShards opens every shard not seen before. On the first pass only
// open shards are read, from LATEST; closed ones are recorded as seen. Later
// passes read new shards from TRIM_HORIZON, waiting while a parent shard is
// still being drained.
func (l *BookingStreamListener) discoverShards(ctx context.Context, known map[string]bool, cursors map[string]*shardCursor, initial bool) error {
	var lastShard *string
	for {
		out, err := l.streams.DescribeStream(ctx, &dynamodbstreams.DescribeStreamInput{
			StreamArn:             aws.String(l.streamARN),
			ExclusiveStartShardId: lastShard,
		})
		if err != nil {
			return err
		}
		if out.StreamDescription == nil {
			return nil
		}

		for _, shard := range out.StreamDescription.Shards {
			shardID := aws.ToString(shard.ShardId)
			if known[shardID] {
				continue
			}
			closed := shard.SequenceNumberRange != nil && shard.SequenceNumberRange.EndingSequenceNumber != nil
			if initial && closed {
				known[shardID] = true
				continue
			}
			if _, draining := cursors[aws.ToString(shard.ParentShardId)]; draining && !initial {
				continue
			}

			cur := &shardCursor{latest: initial}
			if err := l.reopen(ctx, shardID, cur); err != nil {
				return err
			}
			known[shardID] = true
			cursors[shardID] = cur
			if !initial {
				log.Printf("[bookings][stream] new shard opened shard_id=%s parent_shard_id=%s", shardID, aws.ToString(shard.ParentShardId))
			}
		}

		lastShard = out.StreamDescription.LastEvaluatedShardId
		if lastShard == nil {
			return nil
		}
	}
}

// reopen gets a fresh iterator for a shard: after the last delivered record
// when there is one, otherwise from where the shard was first opened.
func (l *BookingStreamListener) reopen(ctx context.Context, shardID string, cur *shardCursor) error {
	in := &dynamodbstreams.GetShardIteratorInput{
		StreamArn: aws.String(l.streamARN),
		ShardId:   aws.String(shardID),
	}
	switch {
	case cur.lastSeq != "":
		in.ShardIteratorType = types.ShardIteratorTypeAfterSequenceNumber
		in.SequenceNumber = aws.String(cur.lastSeq)
	case cur.latest:
		in.ShardIteratorType = types.ShardIteratorTypeLatest
	default:
		in.ShardIteratorType = types.ShardIteratorTypeTrimHorizon
	}

	out, err := l.streams.GetShardIterator(ctx, in)
	if err != nil {
		return err
	}
	cur.iterator = out.ShardIterator
	return nil
}

func (l *BookingStreamListener) poll(ctx context.Context, cur *shardCursor, handler interfaces.BookingChangeHandler) (*string, error) {
	out, err := l.streams.GetRecords(ctx, &dynamodbstreams.GetRecordsInput{ShardIterator: cur.iterator})
	if err != nil {
		return nil, err
	}

	for _, rec := range out.Records {
		if rec.Dynamodb != nil && rec.Dynamodb.SequenceNumber != nil {
			cur.lastSeq = aws.ToString(rec.Dynamodb.SequenceNumber)
		}
		change, err := l.toChange(rec)
		if err != nil {
			log.Printf("[bookings][stream] undecodable record event_id=%s err=%v", aws.ToString(rec.EventID), err)
			continue
		}
		if err := handler(ctx, change); err != nil {
			log.Printf("[bookings][stream] handler failed event_id=%s err=%v", change.EventID, err)
		}
	}
	return out.NextShardIterator, nil
}

func (l *BookingStreamListener) toChange(rec types.Record) (entities.BookingChange, error) {
	change := entities.BookingChange{EventID: aws.ToString(rec.EventID)}
	if rec.Dynamodb == nil {
		return change, nil
	}
	if len(rec.Dynamodb.OldImage) > 0 {
		b, err := l.decode(StreamImageToItem(rec.Dynamodb.OldImage))
		if err != nil {
			return change, err
		}
		change.Old = &b
	}
	if len(rec.Dynamodb.NewImage) > 0 {
		b, err := l.decode(StreamImageToItem(rec.Dynamodb.NewImage))
		if err != nil {
			return change, err
		}
		change.New = &b
	}
	return change, nil
}

// StreamImageToItem converts a stream image into the table item shape so it
// can be decoded with the dynamodb attributevalue package.
func StreamImageToItem(image map[string]types.AttributeValue) map[string]ddbtypes.AttributeValue {
	out := make(map[string]ddbtypes.AttributeValue, len(image))
	for k, v := range image {
		if av := streamValue(v); av != nil {
			out[k] = av
		}
	}
	return out
}

func streamValue(v types.AttributeValue) ddbtypes.AttributeValue {
	switch tv := v.(type) {
	case *types.AttributeValueMemberS:
		return &ddbtypes.AttributeValueMemberS{Value: tv.Value}
	case *types.AttributeValueMemberN:
		return &ddbtypes.AttributeValueMemberN{Value: tv.Value}
	case *types.AttributeValueMemberB:
		return &ddbtypes.AttributeValueMemberB{Value: tv.Value}
	case *types.AttributeValueMemberBOOL:
		return &ddbtypes.AttributeValueMemberBOOL{Value: tv.Value}
	case *types.AttributeValueMemberNULL:
		return &ddbtypes.AttributeValueMemberNULL{Value: tv.Value}
	case *types.AttributeValueMemberSS:
		return &ddbtypes.AttributeValueMemberSS{Value: tv.Value}
	case *types.AttributeValueMemberNS:
		return &ddbtypes.AttributeValueMemberNS{Value: tv.Value}
	case *types.AttributeValueMemberBS:
		return &ddbtypes.AttributeValueMemberBS{Value: tv.Value}
	case *types.AttributeValueMemberL:
		list := make([]ddbtypes.AttributeValue, 0, len(tv.Value))
		for _, item := range tv.Value {
			if av := streamValue(item); av != nil {
				list = append(list, av)
			}
		}
		return &ddbtypes.AttributeValueMemberL{Value: list}
	case *types.AttributeValueMemberM:
		return &ddbtypes.AttributeValueMemberM{Value: StreamImageToItem(tv.Value)}
	}
	return nil
}
