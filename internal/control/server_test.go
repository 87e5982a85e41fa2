package control

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/hypebeast/go-osc/osc"
	"go.uber.org/zap"
)

func startTestServer(t *testing.T) (*Queue, int) {
	t.Helper()
	queue := NewQueue(16)
	srv := NewServer("127.0.0.1", 0, queue, zap.NewNop())

	addr, err := srv.Listen()
	if err != nil {
		t.Fatalf("Listen() error: %v", err)
	}
	t.Cleanup(func() { srv.Close() })

	go srv.Serve()

	_, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		t.Fatalf("SplitHostPort(%q): %v", addr.String(), err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("Atoi(%q): %v", portStr, err)
	}
	return queue, port
}

func sendMessage(t *testing.T, port int, address string, args ...interface{}) {
	t.Helper()
	client := osc.NewClient("127.0.0.1", port)
	msg := osc.NewMessage(address)
	for _, a := range args {
		msg.Append(a)
	}
	if err := client.Send(msg); err != nil {
		t.Fatalf("Send(%s): %v", address, err)
	}
}

func waitForCommand(t *testing.T, queue *Queue) Command {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		cmds := queue.Drain()
		if len(cmds) > 0 {
			return cmds[0]
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for command")
	return Command{}
}

func TestServerDecodesChangeScene(t *testing.T) {
	queue, port := startTestServer(t)
	sendMessage(t, port, "/change_scene", int32(2))

	cmd := waitForCommand(t, queue)
	if cmd.Kind != ChangeScene || cmd.ID != 2 {
		t.Errorf("cmd = %+v, want ChangeScene{ID:2}", cmd)
	}
}

func TestServerDecodesLoadJSON(t *testing.T) {
	queue, port := startTestServer(t)
	sendMessage(t, port, "/load_json", "show1")

	cmd := waitForCommand(t, queue)
	if cmd.Kind != LoadShow || cmd.Path != "show1" {
		t.Errorf("cmd = %+v, want LoadShow{Path:show1}", cmd)
	}
}

func TestServerDecodesPaletteEntryNumericPID(t *testing.T) {
	queue, port := startTestServer(t)
	sendMessage(t, port, "/palette/3/2", int32(10), int32(20), int32(30))

	cmd := waitForCommand(t, queue)
	if cmd.Kind != PaletteEntry || cmd.PaletteID != 3 || cmd.ColorID != 2 {
		t.Fatalf("cmd = %+v, want PaletteEntry{PaletteID:3,ColorID:2}", cmd)
	}
	if cmd.R != 10 || cmd.G != 20 || cmd.B != 30 {
		t.Errorf("cmd rgb = %d,%d,%d, want 10,20,30", cmd.R, cmd.G, cmd.B)
	}
}

func TestServerDecodesPaletteEntryLetterPID(t *testing.T) {
	queue, port := startTestServer(t)
	sendMessage(t, port, "/palette/A/0", int32(1), int32(2), int32(3))

	cmd := waitForCommand(t, queue)
	if cmd.Kind != PaletteEntry || cmd.PaletteID != 0 || cmd.ColorID != 0 {
		t.Fatalf("cmd = %+v, want PaletteEntry{PaletteID:0,ColorID:0} ('A' aliases 0)", cmd)
	}
}

func TestServerNoArgCommands(t *testing.T) {
	queue, port := startTestServer(t)
	sendMessage(t, port, "/pause")

	cmd := waitForCommand(t, queue)
	if cmd.Kind != Pause {
		t.Errorf("cmd.Kind = %v, want Pause", cmd.Kind)
	}
}

func TestServerRejectsMalformedIntArg(t *testing.T) {
	queue, port := startTestServer(t)
	sendMessage(t, port, "/change_scene", "not-an-int")

	time.Sleep(50 * time.Millisecond)
	if got := queue.Drain(); len(got) != 0 {
		t.Errorf("queue = %+v, want empty (malformed argument rejected)", got)
	}
}
