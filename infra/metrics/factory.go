package metrics

import (
	"github.com/kfarnes/mast/core/factory"
	coremetrics "github.com/kfarnes/mast/core/metrics"
)

type influxConf struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

func init() {
	must(coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	}))
	must(coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.Sink, error) {
		return NewPromSink()
	}))
	must(coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c influxConf
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
