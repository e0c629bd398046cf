package api

// HTML templates for the portal shell. Page content comes from the pages
// directory on disk; these provide the surrounding app layout and the
// study-challenge page.

// layoutTemplate wraps page content in the portal header and sidebar. The
// inline script keeps the sidebar coin badge in sync with the server.
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - Bimalism</title>
<style>
body { font-family: sans-serif; margin: 0; background: #f9fafb; color: #1f2937; }
header { background: #2563eb; color: white; padding: 1rem 1.5rem; display: flex; justify-content: space-between; align-items: center; }
.logo { font-size: 1.5rem; font-weight: 700; }
nav.sidebar a { display: block; padding: 0.5rem 1rem; color: #333; text-decoration: none; }
nav.sidebar a:hover { background: #f3f4f6; color: #2563eb; }
.coin-badge { background: #f59e0b; color: white; padding: 3px 9px; border-radius: 10px; font-size: 0.8rem; }
main { max-width: 1200px; margin: 0 auto; padding: 2rem 1.5rem; background: white; }
.placeholder { text-align: center; padding: 2rem; }
</style>
</head>
<body>
<header>
  <div class="logo">Bimalism</div>
  <span class="coin-badge" id="coinBadge">{{.Coins}} coins</span>
</header>
<nav class="sidebar">
  <a href="/">Home</a>
  <a href="/bio-data-pop-up">Bio Data</a>
  <a href="/neet">NEET</a>
  <a href="/jee">JEE</a>
  <a href="/game">Game</a>
  <a href="/registration">Study Challenge</a>
  <a href="/table">Study Resources</a>
  <a href="/calculator">Calculator</a>
  <a href="/settings">Settings</a>
</nav>
<main>
{{.Content}}
</main>
<script>
function loadCoinData() {
  fetch('/api/get_coins')
    .then(function(r) { return r.json(); })
    .then(function(data) {
      var badge = document.getElementById('coinBadge');
      if (badge) { badge.textContent = data.coins + ' coins'; }
    })
    .catch(function(err) { console.error('coin refresh failed', err); });
}
setInterval(loadCoinData, 30000);
loadCoinData();
</script>
</body>
</html>
`

// challengeTemplate is the study-challenge page: live timer, coin dashboard,
// and progress toward the coin goal. The timer flushes to the server once a
// minute and on pause, matching the accounting contract.
const challengeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Study Challenge - Bimalism</title>
<style>
body { font-family: sans-serif; margin: 0; background: #f9fafb; color: #1f2937; }
header { background: #2563eb; color: white; padding: 1rem 1.5rem; }
main { max-width: 900px; margin: 0 auto; padding: 2rem 1.5rem; }
.dashboard { background: #f59e0b; color: white; border-radius: 16px; padding: 2rem; margin-bottom: 2rem; }
.coin-value { font-size: 3rem; font-weight: 700; }
.progress-bar { height: 10px; background: rgba(255,255,255,0.3); border-radius: 5px; }
.progress-fill { height: 100%; background: white; border-radius: 5px; width: {{printf "%.1f" .ProgressPct}}%; }
.timer { background: #1e40af; color: white; border-radius: 16px; padding: 2rem; text-align: center; }
.timer-display { font-size: 3rem; font-family: monospace; margin: 1rem 0; }
button { padding: 0.7rem 1.4rem; border: none; border-radius: 20px; font-weight: 600; cursor: pointer; margin: 0 0.3rem; }
</style>
</head>
<body>
<header><a href="/" style="color:white">&larr;</a> Study Challenge</header>
<main>
  <div class="dashboard">
    <h3>Study Challenge Progress</h3>
    <div class="coin-value" id="coinValue">{{.Coins}}</div>
    <p>Coins Earned &bull; {{.StudyLabel}} studied</p>
    <p id="progressLabel">{{.Coins}}/{{.Goal}} Coins &bull; {{.Remaining}} to go</p>
    <div class="progress-bar"><div class="progress-fill" id="progressFill"></div></div>
  </div>
  <div class="timer">
    <h2>Study Timer</h2>
    <p>Every two hours of study earns one coin. Progress is saved on the server.</p>
    <div class="timer-display" id="timerDisplay">00:00:00</div>
    <button id="startTimer">Start</button>
    <button id="pauseTimer">Pause</button>
    <button id="resetTimer">Reset</button>
  </div>
</main>
<script>
var studySeconds = 0, running = false, ticker = null;
var goal = {{.Goal}};

function pad(n) { return String(n).padStart(2, '0'); }
function renderTimer() {
  var h = Math.floor(studySeconds / 3600);
  var m = Math.floor((studySeconds % 3600) / 60);
  var s = studySeconds % 60;
  document.getElementById('timerDisplay').textContent = pad(h) + ':' + pad(m) + ':' + pad(s);
}
function renderTotals(coins, studyTime) {
  document.getElementById('coinValue').textContent = coins;
  var remaining = Math.max(goal - coins, 0);
  document.getElementById('progressLabel').textContent = coins + '/' + goal + ' Coins • ' + remaining + ' to go';
  document.getElementById('progressFill').style.width = Math.min((coins / goal) * 100, 100) + '%';
}
function flushTimer() {
  if (studySeconds === 0) { return; }
  fetch('/api/update_coins', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({ action: 'update_timer', study_seconds: studySeconds })
  })
  .then(function(r) { return r.json(); })
  .then(function(data) {
    if (data.success) {
      renderTotals(data.coins, data.study_time);
      studySeconds = 0;
      renderTimer();
    }
  })
  .catch(function(err) { console.error('save failed', err); });
}
document.getElementById('startTimer').addEventListener('click', function() {
  if (running) { return; }
  running = true;
  ticker = setInterval(function() {
    studySeconds++;
    renderTimer();
    if (studySeconds % 60 === 0) { flushTimer(); }
  }, 1000);
});
document.getElementById('pauseTimer').addEventListener('click', function() {
  if (!running) { return; }
  running = false;
  clearInterval(ticker);
  flushTimer();
});
document.getElementById('resetTimer').addEventListener('click', function() {
  running = false;
  clearInterval(ticker);
  flushTimer();
  studySeconds = 0;
  renderTimer();
});
window.addEventListener('beforeunload', flushTimer);
renderTimer();
</script>
</body>
</html>
`
