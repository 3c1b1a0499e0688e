package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"math/rand"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	for i := 1; i <= 4; i++ {
		config, err := ParseConfig(i)
		require.NoError(t, err)
		assert.Equal(t, Config(i), config)
	}

	for _, value := range []int{0, 5, -1} {
		_, err := ParseConfig(value)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	}

	assert.Equal(t, "cross_13", CROSS_13.String())
}

func TestGenerateDataRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		data := GenerateData(rng, 1.5, 3, 2, 20, ALL_4, nil)
		m := data.Measurements

		assert.Equal(t, 3, m.Time)
		assert.GreaterOrEqual(t, m.RPM, 0)
		assert.LessOrEqual(t, m.RPM, 5000)
		assert.GreaterOrEqual(t, m.Power, 10)
		assert.LessOrEqual(t, m.Power, 100)
		assert.GreaterOrEqual(t, m.Voltage, 0.1)
		assert.Less(t, m.Voltage, 5.9)
		assert.GreaterOrEqual(t, m.Temp, 35.0)
		assert.Less(t, m.Temp, 45.0)
		assert.GreaterOrEqual(t, m.Current, -0.01)
		assert.Less(t, m.Current, 0.1)
	}
}

func TestPayloadJSON(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	step := 40

	b, err := json.Marshal(GenerateData(rng, 1.5, 1, 0, 20, SINGLE, nil))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "d126", decoded["vehicle"])
	assert.Equal(t, 1.5, decoded["testid"])

	params := decoded["params"].(map[string]any)
	assert.Nil(t, params["step"])
	assert.Equal(t, float64(1), params["config"])
	assert.Equal(t, "°C", decoded["uom"].(map[string]any)["temp"])
	assert.Len(t, decoded["labels"], 6)

	b, err = json.Marshal(GenerateData(rng, 1.5, 1, 0, step, SINGLE, &step))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"params":{"power":40,"config":1,"step":40}`)
}

func receive(t *testing.T, conn *net.UDPConn, count int) []Payload {
	t.Helper()

	var received []Payload
	buffer := make([]byte, 65507)

	for i := 0; i < count; i++ {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, _, err := conn.ReadFromUDP(buffer)
		require.NoError(t, err)

		var data Payload
		require.NoError(t, json.Unmarshal(buffer[:n], &data))
		received = append(received, data)
	}

	return received
}

func localSink(t *testing.T) (*net.UDPConn, int) {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	return conn, conn.LocalAddr().(*net.UDPAddr).Port
}

func TestRunSteps(t *testing.T) {
	sink, port := localSink(t)
	defer sink.Close()

	opt := DefaultOptions()
	opt.Port = port
	opt.Steps = []int{10, 20, 30, 40, 50}
	opt.Delay = time.Millisecond

	sim, err := NewSimulator(opt)
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background()))
	assert.Equal(t, 5, sim.TotalPackets)

	received := receive(t, sink, 5)
	escIDs := []int{0, 1, 2, 3, 0}
	times := []int{1, 1, 1, 1, 2}

	for i, data := range received {
		assert.Equal(t, escIDs[i], data.EscID)
		assert.Equal(t, times[i], data.Measurements.Time)
		assert.Equal(t, opt.Steps[i], data.Params.Power)
		require.NotNil(t, data.Params.Step)
		assert.Equal(t, opt.Steps[i], *data.Params.Step)
		assert.Equal(t, ALL_4, data.Params.Config)
		assert.Equal(t, received[0].TestID, data.TestID)
	}
}

func TestRunTimeout(t *testing.T) {
	sink, port := localSink(t)
	defer sink.Close()

	opt := DefaultOptions()
	opt.Port = port
	opt.Timeout = 100 * time.Millisecond
	opt.Delay = 10 * time.Millisecond

	sim, err := NewSimulator(opt)
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, sim.Run(context.Background()))
	assert.Less(t, time.Since(start), time.Second)
	assert.Greater(t, sim.TotalPackets, 1)

	received := receive(t, sink, 1)
	assert.Nil(t, received[0].Params.Step)
	assert.Equal(t, 20, received[0].Params.Power)
}

func TestRunZeroTimeoutSendsNothing(t *testing.T) {
	sink, port := localSink(t)
	defer sink.Close()

	opt := DefaultOptions()
	opt.Port = port
	opt.Timeout = 0

	sim, err := NewSimulator(opt)
	require.NoError(t, err)
	require.NoError(t, sim.Run(context.Background()))
	assert.Equal(t, 0, sim.TotalPackets)
	assert.Equal(t, 0, sim.TotalByte)
}

func TestRunCancelled(t *testing.T) {
	sink, port := localSink(t)
	defer sink.Close()

	opt := DefaultOptions()
	opt.Port = port
	opt.Timeout = time.Minute
	opt.Delay = 10 * time.Millisecond

	sim, err := NewSimulator(opt)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("simulator did not stop on cancel")
	}
}

func TestNewSimulatorValidates(t *testing.T) {
	opt := DefaultOptions()
	opt.Config = 7
	_, err := NewSimulator(opt)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	opt = DefaultOptions()
	opt.Port = 70000
	_, err = NewSimulator(opt)
	assert.Error(t, err)
}

func TestPrintOptions(t *testing.T) {
	opt := DefaultOptions()
	opt.Steps = []int{10, 20}

	var buf bytes.Buffer
	opt.Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "OPTION")
	assert.Contains(t, out, "127.0.0.1")
	assert.Contains(t, out, "41234")
	assert.Contains(t, out, "4 (all_4)")
	assert.Contains(t, out, "10,20")
}
