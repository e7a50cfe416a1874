package main

func getEmbeddedHTML() string {
	return `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Blink Kiosk</title>

	<style>
		* {
			margin: 0;
			padding: 0;
			box-sizing: border-box;
		}

		body {
			font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
			background: #0f1419;
			color: #e0e0e0;
			min-height: 100vh;
			padding: 20px;
		}

		header {
			display: flex;
			justify-content: space-between;
			align-items: center;
			margin-bottom: 20px;
			padding-bottom: 14px;
			border-bottom: 1px solid #333;
		}

		h1 {
			font-size: 24px;
			font-weight: 600;
		}

		.topbar {
			display: flex;
			gap: 16px;
			align-items: center;
			font-size: 14px;
		}

		.badge {
			padding: 6px 12px;
			border-radius: 16px;
			background: #1e2530;
		}

		.badge.armed { background: #1a4d2e; }
		.badge.disarmed { background: #4d1a1a; }
		.badge.snooze { background: #4d3a1a; }
		.badge.alert { background: #5c1f1f; }

		.grid {
			display: grid;
			grid-template-columns: repeat(auto-fill, minmax(340px, 1fr));
			gap: 16px;
		}

		.panel {
			background: #161b22;
			border: 1px solid #2a2f36;
			border-radius: 8px;
			padding: 12px;
		}

		.panel.stale { border-color: #b58900; }
		.panel.offline { border-color: #dc322f; }

		.panel h2 {
			font-size: 16px;
			margin-bottom: 8px;
		}

		.panel img {
			width: 100%;
			border-radius: 4px;
			background: #000;
		}

		.meta {
			display: flex;
			justify-content: space-between;
			margin-top: 8px;
			font-size: 13px;
			color: #9aa4ae;
		}

		.age.stale { color: #b58900; font-weight: 600; }
	</style>
</head>
<body>
	<header>
		<h1>Blink Kiosk</h1>
		<div class="topbar" id="topbar"></div>
	</header>
	<div class="grid" id="cameras"></div>

	<script>
		const TOKEN = "__DISPLAY_TOKEN__";
		const VIEW_INTERVAL_MS = 5000;

		let viewInFlight = false;

		function esc(s) {
			const div = document.createElement("div");
			div.textContent = s == null ? "" : String(s);
			return div.innerHTML;
		}

		function renderTopbar(view) {
			const parts = [];
			if (view.weather && view.weather.available) {
				parts.push('<span class="badge">' + esc(view.weather.temp_f) + '&deg;F ' +
					esc(view.weather.description) + '</span>');
			}
			if (view.alerts && view.alerts.active) {
				parts.push('<span class="badge alert">' + view.alerts.headlines.length + ' NWS alert(s)</span>');
			}
			if (view.arm && view.arm.known) {
				parts.push('<span class="badge ' + (view.arm.armed ? 'armed">Armed' : 'disarmed">Disarmed') + '</span>');
			}
			for (const b of view.snooze_badges || []) {
				const who = b.camera === "all" ? "All cameras" : b.camera;
				parts.push('<span class="badge snooze" onclick="cancelSnooze(\'' + esc(b.camera) + '\')">' +
					esc(who) + ': ' + esc(b.countdown) + '</span>');
			}
			document.getElementById("topbar").innerHTML = parts.join("");
		}

		function renderCameras(view) {
			const grid = document.getElementById("cameras");
			const html = [];
			for (const cam of view.cameras || []) {
				const cls = cam.offline ? "panel offline" : (cam.stale ? "panel stale" : "panel");
				const img = (cam.images && cam.images.length > 0)
					? '<img src="/image/' + encodeURIComponent(cam.normalized_name) + '/' +
						cam.images[cam.active_index].path + '?token=' + TOKEN + '" alt="' + esc(cam.name) + '">'
					: '<img alt="no image">';
				html.push(
					'<div class="' + cls + '">' +
					'<h2>' + esc(cam.name) + (cam.offline ? ' &#9888;' : '') + '</h2>' +
					img +
					'<div class="meta">' +
					'<span class="age' + (cam.stale ? ' stale' : '') + '">' + esc(cam.age_label) + '</span>' +
					'<span>' + esc(cam.temperature) + '&deg; &middot; ' + esc(cam.battery) +
					' &middot; WiFi ' + cam.wifi_bars + '/5</span>' +
					'</div></div>');
			}
			grid.innerHTML = html.join("");
		}

		async function refreshView() {
			if (viewInFlight) return;
			viewInFlight = true;
			try {
				const resp = await fetch("/api/view?token=" + TOKEN);
				if (!resp.ok) return;
				const view = await resp.json();
				renderTopbar(view);
				renderCameras(view);
			} catch (e) {
				// Backend hiccup; the next tick will retry.
			} finally {
				viewInFlight = false;
			}
		}

		function cancelSnooze(camera) {
			if (!confirm("Cancel snooze for " + camera + "?")) return;
			const path = camera === "all" ? "/api/snooze/all/unset" : "/api/snooze/unset";
			fetch(path + "?token=" + TOKEN, {
				method: "POST",
				headers: { "Content-Type": "application/json" },
				body: JSON.stringify({ camera_name: camera })
			}).then(refreshView);
		}

		refreshView();
		setInterval(refreshView, VIEW_INTERVAL_MS);
	</script>
</body>
</html>`
}
