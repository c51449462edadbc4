/*
Copyright 2023 Alexander Bartolomey (github@alexanderbartolomey.de)

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package fast

import "github.com/prometheus/client_golang/prometheus"

var (
	MessagesDecodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fast_decoder_decoded_messages_total",
		Help: "Total number of messages successfully decoded per template",
	}, []string{"template"})

	MessagesEncodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fast_encoder_encoded_messages_total",
		Help: "Total number of messages successfully encoded per template",
	}, []string{"template"})

	GarbledTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fast_decoder_garbled_total",
		Help: "Total number of messages rejected as garbled",
	})

	RefillsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fast_buffer_refills_total",
		Help: "Total number of buffer refill invocations triggered by primitive underflow",
	})

	DecodeDurationMicroseconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fast_decoder_duration_microseconds",
		Help:    "Duration of a single message decode in microseconds",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	})

	PmapBytesHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "fast_pmap_bytes",
		Help:    "Distribution of presence map lengths in bytes",
		Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8},
	})
)
