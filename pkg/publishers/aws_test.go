package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func sampleEvent() Event {
	evt := NewEvent("https://www.spotrm.com/api/v1", "c1ccccc1N(C)C", []spotrm.Alert{{ID: "12", Description: "Aniline"}})
	evt.AddDrugs("12", []string{"Lidocaine"})
	return evt
}

func TestSQSPublisherSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		typ:      TypeSQS,
		queueURL: "https://example.com/queue",
		client:   client,
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["smiles"]
	if !ok || aws.ToString(attr.StringValue) != "c1ccccc1N(C)C" {
		t.Fatalf("smiles attribute missing or wrong: %#v", attr)
	}
	if aws.ToString(attr.DataType) != "String" {
		t.Fatalf("DataType should be String, got %#v", attr.DataType)
	}
	if first := client.input.MessageAttributes["first_alert_id"]; aws.ToString(first.StringValue) != "12" {
		t.Fatalf("first_alert_id attribute wrong: %#v", first)
	}
	if body := aws.ToString(client.input.MessageBody); !strings.Contains(body, `"drugs_by_alert":{"12":["Lidocaine"]}`) {
		t.Fatalf("MessageBody missing drugs: %s", body)
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{id: "queue", client: &fakeSQSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestSNSPublisherSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	pub := &snsPublisher{
		id:       "topic",
		typ:      TypeSNS,
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	if err := pub.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	if msg := aws.ToString(client.input.Message); !strings.Contains(msg, `"smiles":"c1ccccc1N(C)C"`) {
		t.Fatalf("Message missing smiles: %s", msg)
	}
}

func TestSNSPublisherSendError(t *testing.T) {
	pub := &snsPublisher{id: "topic", client: &fakeSNSClient{err: errors.New("boom")}, log: noopLogger{}}
	if err := pub.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestNewSQSPublisherWithStaticKeys(t *testing.T) {
	pub, err := newSQSPublisher(context.Background(), PublisherConfig{
		ID:   "local",
		Type: TypeSQS,
		SQS: &SQSPublisherConfig{
			QueueURL: "http://localhost:4566/000000000000/alerts",
			AWSAccessConfig: AWSAccessConfig{
				Region:          "us-east-1",
				Endpoint:        "http://localhost:4566",
				AccessKeyID:     "test",
				SecretAccessKey: "test",
			},
		},
	}, nil)
	if err != nil {
		t.Fatalf("newSQSPublisher: %v", err)
	}
	if pub.Type() != TypeSQS || pub.ID() != "local" {
		t.Fatalf("unexpected publisher %s/%s", pub.Type(), pub.ID())
	}
}
