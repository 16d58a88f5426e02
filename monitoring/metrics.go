package monitoring

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// MetricType 指标类型
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
	MetricTypeSummary MetricType = "summary"
)

// Metric 单个指标序列（名称 + 标签）的当前值
type Metric struct {
	Name   string            `json:"name"`
	Type   MetricType        `json:"type"`
	Help   string            `json:"help,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
	Count  uint64            `json:"count,omitempty"`
}

// MetricsCollector 指标收集器，并发安全
type MetricsCollector struct {
	mu        sync.Mutex
	series    map[string]*Metric
	help      map[string]string
	startTime time.Time
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		series:    make(map[string]*Metric),
		help:      make(map[string]string),
		startTime: time.Now(),
	}
}

// Describe 设置指标说明
func (mc *MetricsCollector) Describe(name, help string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.help[name] = help
}

// IncrCounter 增加计数器
func (mc *MetricsCollector) IncrCounter(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	m := mc.seriesFor(name, MetricTypeCounter, labels)
	m.Value += value
}

// Observe 记录一次观测值（累计 sum 与 count）
func (mc *MetricsCollector) Observe(name string, value float64, labels map[string]string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	m := mc.seriesFor(name, MetricTypeSummary, labels)
	m.Value += value
	m.Count++
}

// seriesFor 调用方需持有锁
func (mc *MetricsCollector) seriesFor(name string, typ MetricType, labels map[string]string) *Metric {
	key := name + labelString(labels)
	m, ok := mc.series[key]
	if !ok {
		copied := make(map[string]string, len(labels))
		for k, v := range labels {
			copied[k] = v
		}
		m = &Metric{Name: name, Type: typ, Labels: copied}
		mc.series[key] = m
	}
	return m
}

// Snapshot 返回所有序列的副本，按名称和标签排序
func (mc *MetricsCollector) Snapshot() []Metric {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	result := make([]Metric, 0, len(mc.series))
	for _, series := range mc.series {
		m := *series
		m.Help = mc.help[m.Name]
		labels := make(map[string]string, len(m.Labels))
		for lk, lv := range m.Labels {
			labels[lk] = lv
		}
		m.Labels = labels
		result = append(result, m)
	}
	slices.SortFunc(result, func(a, b Metric) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(labelString(a.Labels), labelString(b.Labels))
	})
	return result
}

// ExportPrometheus 导出Prometheus文本格式
func (mc *MetricsCollector) ExportPrometheus() string {
	var b strings.Builder

	seen := make(map[string]bool)
	for _, m := range mc.Snapshot() {
		if !seen[m.Name] {
			seen[m.Name] = true
			help := m.Help
			if help == "" {
				help = fmt.Sprintf("Metric %s", m.Name)
			}
			fmt.Fprintf(&b, "# HELP %s %s\n", m.Name, help)
			fmt.Fprintf(&b, "# TYPE %s %s\n", m.Name, m.Type)
		}
		labels := labelString(m.Labels)
		if m.Type == MetricTypeSummary {
			fmt.Fprintf(&b, "%s_sum%s %g\n", m.Name, labels, m.Value)
			fmt.Fprintf(&b, "%s_count%s %d\n", m.Name, labels, m.Count)
			continue
		}
		fmt.Fprintf(&b, "%s%s %g\n", m.Name, labels, m.Value)
	}

	b.WriteString("# HELP process_uptime_seconds Seconds since the collector started\n")
	fmt.Fprintf(&b, "# TYPE process_uptime_seconds %s\n", MetricTypeGauge)
	fmt.Fprintf(&b, "process_uptime_seconds %g\n", mc.GetUptime().Seconds())
	return b.String()
}

// GetUptime 获取运行时间
func (mc *MetricsCollector) GetUptime() time.Duration {
	return time.Since(mc.startTime)
}

func labelString(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = fmt.Sprintf("%s=%q", k, labels[k])
	}
	return "{" + strings.Join(pairs, ",") + "}"
}
